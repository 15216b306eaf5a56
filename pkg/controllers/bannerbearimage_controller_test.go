package controllers

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	bannerbearv1 "github.com/Tributary-ai-services/bannerbear-operator/api/v1"
	"github.com/Tributary-ai-services/bannerbear-operator/pkg/bannerbear"
)

var _ = Describe("BannerbearImage Controller", func() {
	const (
		resourceName = "banner"
		namespace    = "default"
		apiKey       = "bb_test_key"
	)

	var (
		ctx        context.Context
		api        *fakeBannerbear
		store      *fakeStore
		k8sClient  client.Client
		reconciler *BannerbearImageReconciler
		key        = types.NamespacedName{Name: resourceName, Namespace: namespace}
	)

	newSecret := func(value string) *corev1.Secret {
		return &corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: defaultSecretName, Namespace: namespace},
			Data:       map[string][]byte{bannerbear.APIKeyEnv: []byte(value)},
		}
	}

	newImage := func(mutate func(*bannerbearv1.BannerbearImageSpec)) *bannerbearv1.BannerbearImage {
		image := &bannerbearv1.BannerbearImage{
			ObjectMeta: metav1.ObjectMeta{Name: resourceName, Namespace: namespace},
			Spec: bannerbearv1.BannerbearImageSpec{
				Template: "tmpl_123",
				Mode:     bannerbearv1.ModeAPI,
				Modifications: []bannerbearv1.ModificationSpec{
					{Name: "title", Text: ptr.To("Hi")},
				},
			},
		}
		if mutate != nil {
			mutate(&image.Spec)
		}
		return image
	}

	setup := func(objs ...client.Object) {
		k8sClient = fake.NewClientBuilder().
			WithScheme(scheme).
			WithStatusSubresource(&bannerbearv1.BannerbearImage{}).
			WithObjects(objs...).
			Build()
		reconciler = &BannerbearImageReconciler{
			Client:     k8sClient,
			Scheme:     scheme,
			HTTPClient: api.client(),
			Store:      store,
		}
	}

	fetch := func() *bannerbearv1.BannerbearImage {
		var image bannerbearv1.BannerbearImage
		Expect(k8sClient.Get(ctx, key, &image)).To(Succeed())
		return &image
	}

	// reconcileUntilSettled runs the reconciler until it stops asking for an
	// immediate requeue, and returns the last result.
	reconcileUntilSettled := func() ctrl.Result {
		var result ctrl.Result
		for i := 0; i < 10; i++ {
			var err error
			result, err = reconciler.Reconcile(ctx, reconcile.Request{NamespacedName: key})
			Expect(err).NotTo(HaveOccurred())
			if !result.Requeue || result.RequeueAfter > 0 {
				return result
			}
		}
		return result
	}

	reconcileOnce := func() {
		_, err := reconciler.Reconcile(ctx, reconcile.Request{NamespacedName: key})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		ctx = context.Background()
		api = newFakeBannerbear()
		DeferCleanup(api.Close)
		store = newFakeStore()
	})

	Context("in api mode", func() {
		It("creates, polls, downloads and stores the image", func() {
			api.createBody = `{"uid":"img_1","status":"pending","template":"tmpl_123"}`
			api.pollResponses = []string{
				`{"uid":"img_1","status":"pending"}`,
				`{"uid":"img_1","status":"completed","image_url":"https://cdn.bannerbear.com/images/img_1.jpg","image_url_jpg":"https://cdn.bannerbear.com/images/img_1.jpg"}`,
			}
			api.serveFile("cdn.bannerbear.com", "/images/img_1.jpg", []byte("jpeg-bytes"))
			setup(newSecret(apiKey), newImage(nil))

			By("submitting the render")
			reconcileUntilSettled()
			image := fetch()
			Expect(image.Finalizers).To(ContainElement(finalizerName))
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseSubmitted))
			Expect(image.Status.ImageUid).To(Equal("img_1"))

			creates := api.callsTo(http.MethodPost, "/v2/images")
			Expect(creates).To(HaveLen(1))
			Expect(creates[0].Host).To(Equal("api.bannerbear.com"))
			Expect(creates[0].Auth).To(Equal("Bearer " + apiKey))
			Expect(creates[0].Body).To(MatchJSON(`{"modifications":[{"name":"title","text":"Hi"}],"metadata":null,"template":"tmpl_123"}`))

			By("polling while Bannerbear renders")
			result := reconcileUntilSettled()
			Expect(result.RequeueAfter).To(Equal(pollInterval))
			Expect(fetch().Status.Phase).To(Equal(bannerbearv1.PhaseRendering))

			By("storing the finished render")
			reconcileUntilSettled()
			image = fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseCompleted))
			Expect(image.Status.CompletionTime).NotTo(BeNil())
			Expect(image.Status.StoredFiles).To(HaveLen(1))
			Expect(image.Status.StoredFiles[0].MinioKey).To(Equal("default/banner/0.jpg"))
			Expect(image.Status.StoredFiles[0].MinioUrl).To(Equal("memory://bannerbear-renders/default/banner/0.jpg"))
			Expect(image.Status.StoredFiles[0].SizeBytes).To(Equal(int64(len("jpeg-bytes"))))
			Expect(image.Status.Conditions).To(HaveLen(1))
			Expect(image.Status.Conditions[0].Status).To(Equal("True"))

			data, ok := store.get("bannerbear-renders/default/banner/0.jpg")
			Expect(ok).To(BeTrue())
			Expect(string(data)).To(Equal("jpeg-bytes"))
		})

		It("skips polling when the synchronous host returns a finished render", func() {
			api.createStatus = http.StatusOK
			api.createBody = `{"uid":"img_2","status":"completed","image_url_png":"https://cdn.bannerbear.com/images/img_2.png","pdf_url":"https://cdn.bannerbear.com/images/img_2.pdf"}`
			api.serveFile("cdn.bannerbear.com", "/images/img_2.png", []byte("png-bytes"))
			api.serveFile("cdn.bannerbear.com", "/images/img_2.pdf", []byte("pdf-bytes"))
			setup(newSecret(apiKey), newImage(func(spec *bannerbearv1.BannerbearImageSpec) {
				spec.Synchronous = true
				spec.Format = "png"
				spec.RenderPdf = true
				spec.TenantId = "acme"
				spec.Storage.Prefix = "renders/"
			}))

			reconcileUntilSettled()

			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseCompleted))
			creates := api.callsTo(http.MethodPost, "/v2/images")
			Expect(creates).To(HaveLen(1))
			Expect(creates[0].Host).To(Equal("sync.api.bannerbear.com"))
			Expect(creates[0].Body).To(MatchJSON(`{"modifications":[{"name":"title","text":"Hi"}],"render_pdf":true,"metadata":null,"template":"tmpl_123"}`))
			Expect(api.callsTo(http.MethodGet, "/v2/images/img_2")).To(BeEmpty())

			Expect(image.Status.StoredFiles).To(HaveLen(2))
			Expect(image.Status.StoredFiles[0].MinioKey).To(Equal("renders/acme/banner/0.png"))
			Expect(image.Status.StoredFiles[1].MinioKey).To(Equal("renders/acme/banner/1.pdf"))
			data, ok := store.get("bannerbear-renders/renders/acme/banner/1.pdf")
			Expect(ok).To(BeTrue())
			Expect(string(data)).To(Equal("pdf-bytes"))
		})

		It("does not retry a request Bannerbear rejected", func() {
			api.createStatus = http.StatusUnprocessableEntity
			api.createBody = `{"message":"template not found"}`
			setup(newSecret(apiKey), newImage(nil))

			result := reconcileUntilSettled()
			Expect(result).To(Equal(ctrl.Result{}))

			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseFailed))
			Expect(image.Status.RetryCount).To(Equal(1))
			Expect(image.Status.LastError).To(ContainSubstring("422"))
			Expect(image.Status.Conditions[0].Reason).To(Equal(reasonRejected))

			result, err := reconciler.Reconcile(ctx, reconcile.Request{NamespacedName: key})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(ctrl.Result{}))
			Expect(api.callsTo(http.MethodPost, "/v2/images")).To(HaveLen(1))
		})

		It("retries server errors after a delay", func() {
			api.createStatus = http.StatusBadGateway
			setup(newSecret(apiKey), newImage(nil))

			result := reconcileUntilSettled()
			Expect(result.RequeueAfter).To(Equal(errorInterval))
			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseFailed))
			Expect(image.Status.Conditions[0].Reason).To(Equal(reasonFailed))

			result, err := reconciler.Reconcile(ctx, reconcile.Request{NamespacedName: key})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(BeNumerically(">", 0))
			Expect(result.RequeueAfter).To(BeNumerically("<=", retryDelay))
		})

		It("fails when the API key secret is missing", func() {
			setup(newImage(nil))

			reconcileUntilSettled()
			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseFailed))
			Expect(image.Status.LastError).To(ContainSubstring(defaultSecretName))
			Expect(api.callsTo(http.MethodPost, "/v2/images")).To(BeEmpty())
		})
	})

	Context("in signedUrl mode", func() {
		It("signs a URL and stores the on-demand render without calling the API", func() {
			api.serveFile("cdn.bannerbear.com", "/signedurl/base_9/image.jpg", []byte("on-demand"))
			setup(newSecret(apiKey), newImage(func(spec *bannerbearv1.BannerbearImageSpec) {
				spec.Mode = bannerbearv1.ModeSignedURL
				spec.BaseId = "base_9"
				spec.Synchronous = true
			}))

			reconcileUntilSettled()

			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseCompleted))
			Expect(bannerbear.VerifySignedURL(apiKey, image.Status.SignedUrl)).To(BeTrue())
			Expect(image.Status.SignedUrl).To(HavePrefix("https://cdn.bannerbear.com/signedurl/base_9/image.jpg?modifications="))

			mods, err := bannerbear.DecodeModifications(image.Status.SignedUrl)
			Expect(err).NotTo(HaveOccurred())
			Expect(mods).To(Equal([]bannerbear.Modification{{Name: "title", Text: ptr.To("Hi")}}))

			Expect(api.callsTo(http.MethodPost, "/v2/images")).To(BeEmpty())
			data, ok := store.get("bannerbear-renders/default/banner/0.jpg")
			Expect(ok).To(BeTrue())
			Expect(string(data)).To(Equal("on-demand"))
		})

		It("signs again when the API key rotates before download", func() {
			api.serveFile("ondemand.bannerbear.com", "/signedurl/tmpl_123/image.jpg", []byte("on-demand"))
			setup(newSecret("old-key"), newImage(func(spec *bannerbearv1.BannerbearImageSpec) {
				spec.Mode = bannerbearv1.ModeSignedURL
			}))

			By("signing with the old key")
			reconcileOnce() // finalizer
			reconcileOnce() // initial status
			reconcileOnce() // sign
			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseDownloading))
			Expect(bannerbear.VerifySignedURL("old-key", image.Status.SignedUrl)).To(BeTrue())

			By("rotating the key")
			Expect(k8sClient.Update(ctx, secretWithKey(ctx, k8sClient, namespace, "new-key"))).To(Succeed())

			reconcileUntilSettled()
			image = fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseCompleted))
			Expect(image.Status.SignedUrl).To(HavePrefix("https://ondemand.bannerbear.com/"))
			Expect(bannerbear.VerifySignedURL("new-key", image.Status.SignedUrl)).To(BeTrue())
			Expect(bannerbear.VerifySignedURL("old-key", image.Status.SignedUrl)).To(BeFalse())
		})

		It("fails when the render cannot be stored", func() {
			store.failing = true
			api.serveFile("ondemand.bannerbear.com", "/signedurl/tmpl_123/image.jpg", []byte("on-demand"))
			setup(newSecret(apiKey), newImage(func(spec *bannerbearv1.BannerbearImageSpec) {
				spec.Mode = bannerbearv1.ModeSignedURL
			}))

			result := reconcileUntilSettled()
			Expect(result.RequeueAfter).To(Equal(errorInterval))
			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseFailed))
			Expect(image.Status.LastError).To(ContainSubstring("Failed to upload jpg to MinIO"))
		})

		It("fails when the on-demand render is unavailable", func() {
			setup(newSecret(apiKey), newImage(func(spec *bannerbearv1.BannerbearImageSpec) {
				spec.Mode = bannerbearv1.ModeSignedURL
			}))

			reconcileUntilSettled()
			image := fetch()
			Expect(image.Status.Phase).To(Equal(bannerbearv1.PhaseFailed))
			Expect(image.Status.LastError).To(ContainSubstring("download returned status 404"))
		})
	})

	Context("on deletion", func() {
		It("removes stored files and the finalizer", func() {
			api.createStatus = http.StatusOK
			api.createBody = `{"uid":"img_3","status":"completed","image_url":"https://cdn.bannerbear.com/images/img_3.jpg"}`
			api.serveFile("cdn.bannerbear.com", "/images/img_3.jpg", []byte("jpeg"))
			setup(newSecret(apiKey), newImage(nil))

			reconcileUntilSettled()
			Expect(fetch().Status.Phase).To(Equal(bannerbearv1.PhaseCompleted))

			Expect(k8sClient.Delete(ctx, fetch())).To(Succeed())
			_, err := reconciler.Reconcile(ctx, reconcile.Request{NamespacedName: key})
			Expect(err).NotTo(HaveOccurred())

			Expect(store.deleted).To(ConsistOf("bannerbear-renders/default/banner/0.jpg"))
			err = k8sClient.Get(ctx, key, &bannerbearv1.BannerbearImage{})
			Expect(errors.IsNotFound(err)).To(BeTrue())
		})
	})
})

func secretWithKey(ctx context.Context, c client.Client, namespace, value string) *corev1.Secret {
	var secret corev1.Secret
	Expect(c.Get(ctx, types.NamespacedName{Name: defaultSecretName, Namespace: namespace}, &secret)).To(Succeed())
	secret.Data[bannerbear.APIKeyEnv] = []byte(value)
	return &secret
}
