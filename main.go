/*
MIT License

Copyright (c) 2021 StorageOS

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"context"
	"flag"
	"os"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	akriv1 "github.com/romoh/akri/api/v1"
	"github.com/romoh/akri/internal/controllers/podwatch"
	"github.com/romoh/akri/internal/controllers/slotreconciler"
	"github.com/romoh/akri/internal/pkg/configwatch"
	"github.com/romoh/akri/internal/pkg/crictl"
	"github.com/romoh/akri/internal/pkg/env"
	"github.com/romoh/akri/internal/pkg/kube"
	"github.com/romoh/akri/internal/pkg/metrics"
	"github.com/romoh/akri/internal/pkg/metricssrv"
	"github.com/romoh/akri/internal/pkg/supervisor"
	// +kubebuilder:scaffold:imports
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("agent")
)

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = akriv1.AddToScheme(scheme)
	// +kubebuilder:scaffold:scheme
}

func main() {
	var loggerOpts zap.Options
	var metricsAddr string
	var enableLeaderElection bool
	var reconcileWorkers int

	flag.StringVar(&metricsAddr, "metrics-addr", ":8080", "The address the metric endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "enable-leader-election", false,
		"Enable leader election for controller manager. Enabling this will "+
			"ensure there is only one active agent per node lease.")
	flag.IntVar(&reconcileWorkers, "pod-watch-workers", 1, "Maximum concurrent pod-triggered reconciliation passes.")
	loggerOpts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&loggerOpts)))

	cfg, err := env.Load()
	if err != nil {
		fatal(err, "unable to load agent configuration from the environment")
	}

	metrics.Register()

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme:             scheme,
		MetricsBindAddress: metricsAddr,
		LeaderElection:     enableLeaderElection,
		LeaderElectionID:   "akri-agent-" + cfg.NodeName + "-lease",
	})
	if err != nil {
		fatal(err, "unable to start manager")
	}

	ctx, cancel := context.WithCancel(ctrl.SetupSignalHandler())
	defer cancel()

	// Index Pods by node name so kube.Client.FindPodsOnNode can use a field
	// selector instead of listing and filtering every pod in the cluster.
	if err := mgr.GetFieldIndexer().IndexField(ctx, &corev1.Pod{}, "spec.nodeName", func(rawObj client.Object) []string {
		pod := rawObj.(*corev1.Pod)
		return []string{pod.Spec.NodeName}
	}); err != nil {
		fatal(err, "unable to index pods by node name")
	}

	// +kubebuilder:scaffold:builder

	slotQuery := &crictl.CLIQuery{
		CrictlPath:      cfg.CrictlPath,
		RuntimeEndpoint: cfg.RuntimeEndpoint,
		ImageEndpoint:   cfg.ImageEndpoint,
	}
	reconciler := slotreconciler.New(kube.NewClient(mgr.GetClient()), slotQuery, ctrl.Log.WithName("slotreconciler"))

	setupLog.Info("starting pod watch controller", "node", cfg.NodeName)
	if err := podwatch.NewReconciler(mgr.GetClient(), reconciler, cfg.NodeName).SetupWithManager(mgr, reconcileWorkers); err != nil {
		fatal(err, "failed to register pod watch reconciler")
	}

	group := supervisor.New(setupLog)
	group.Add("manager", mgr.Start)
	group.Add("metrics-server", metricssrv.Run)
	group.Add("config-watch", configwatch.Run)

	setupLog.Info("starting agent", "node", cfg.NodeName)
	if err := group.Run(ctx); err != nil {
		fatal(err, "agent stopped")
	}
	setupLog.Info("shutdown complete")
}

func fatal(err error, msg string) {
	setupLog.Error(err, msg)
	os.Exit(1)
}
