package podwatch

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	akriv1 "github.com/romoh/akri/api/v1"
)

const (
	suiteTimeout  = 10 * time.Second
	suiteInterval = 250 * time.Millisecond
)

var _ = Describe("PodWatch controller", func() {
	Context("when a pod scheduled to this node is updated", func() {
		It("credits the slot the crictl probe reports live", func() {
			instance := &akriv1.Instance{
				ObjectMeta: metav1.ObjectMeta{Name: "config-a", Namespace: "default"},
				Spec: akriv1.InstanceSpec{
					ConfigurationName: "config-a",
					DeviceUsage: map[akriv1.SlotID]akriv1.NodeID{
						"config-a-1": "",
						"config-a-3": "",
					},
				},
			}
			Expect(k8sClient.Create(ctx, instance)).To(Succeed())

			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "default"},
				Spec: corev1.PodSpec{
					NodeName:   "node-a",
					Containers: []corev1.Container{{Name: "app", Image: "busybox"}},
				},
			}
			Expect(k8sClient.Create(ctx, pod)).To(Succeed())

			// The predicate ignores Create events (the allocation ingress
			// owns those); a subsequent update, the way a kubelet status
			// report would arrive, is what triggers the pass under test.
			pod.Labels = map[string]string{"observed": "true"}
			Expect(k8sClient.Update(ctx, pod)).To(Succeed())

			By("updating the instance once the pod event reaches the reconciler")
			Eventually(func() akriv1.NodeID {
				got := &akriv1.Instance{}
				if err := k8sClient.Get(ctx, client.ObjectKeyFromObject(instance), got); err != nil {
					return ""
				}
				return got.Spec.DeviceUsage["config-a-3"]
			}, suiteTimeout, suiteInterval).Should(Equal(akriv1.NodeID("node-a")))
		})
	})
})
