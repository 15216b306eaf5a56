package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	bannerbearv1 "github.com/Tributary-ai-services/bannerbear-operator/api/v1"
	"github.com/Tributary-ai-services/bannerbear-operator/pkg/bannerbear"
)

const (
	finalizerName = "bannerbearimage.bannerbear.tas.ai/finalizer"

	defaultSecretName = "bannerbear-api-secret"
	defaultBucket     = "bannerbear-renders"
	defaultTenant     = "default"

	maxRetries    = 3
	retryDelay    = 5 * time.Minute
	pollInterval  = 5 * time.Second
	errorInterval = 30 * time.Second

	reasonFailed   = "Failed"
	reasonRejected = "Rejected"
)

var tracer = otel.Tracer("bannerbearimage-controller")

// ObjectStore keeps rendered files. *minio.Client satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// BannerbearImageReconciler reconciles a BannerbearImage object
type BannerbearImageReconciler struct {
	client.Client
	Scheme            *runtime.Scheme
	BannerbearURL     string
	BannerbearSyncURL string
	HTTPClient        *http.Client
	Store             ObjectStore
}

//+kubebuilder:rbac:groups=bannerbear.tas.ai,resources=bannerbearimages,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=bannerbear.tas.ai,resources=bannerbearimages/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=bannerbear.tas.ai,resources=bannerbearimages/finalizers,verbs=update
//+kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch

// Reconcile drives a BannerbearImage through render, download and storage
func (r *BannerbearImageReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	ctx, span := tracer.Start(ctx, "bannerbearimage_reconcile")
	defer span.End()

	logger := log.FromContext(ctx)
	span.SetAttributes(
		attribute.String("bannerbearimage.name", req.Name),
		attribute.String("bannerbearimage.namespace", req.Namespace),
	)

	var image bannerbearv1.BannerbearImage
	if err := r.Get(ctx, req.NamespacedName, &image); err != nil {
		if errors.IsNotFound(err) {
			logger.Info("BannerbearImage resource not found, ignoring since object must be deleted")
			return ctrl.Result{}, nil
		}
		span.RecordError(err)
		logger.Error(err, "Failed to get BannerbearImage")
		return ctrl.Result{}, err
	}

	if image.ObjectMeta.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(&image, finalizerName) {
			controllerutil.AddFinalizer(&image, finalizerName)
			if err := r.Update(ctx, &image); err != nil {
				return ctrl.Result{}, err
			}
			return ctrl.Result{Requeue: true}, nil
		}
	} else {
		if controllerutil.ContainsFinalizer(&image, finalizerName) {
			r.cleanupImage(ctx, &image)
			controllerutil.RemoveFinalizer(&image, finalizerName)
			return ctrl.Result{}, r.Update(ctx, &image)
		}
		return ctrl.Result{}, nil
	}

	if image.Status.Phase == "" {
		now := metav1.Now()
		image.Status.Phase = bannerbearv1.PhasePending
		image.Status.StartTime = &now
		setReadyCondition(&image, metav1.ConditionFalse, "Initializing", "BannerbearImage is being initialized")
		if err := r.Status().Update(ctx, &image); err != nil {
			span.RecordError(err)
			return ctrl.Result{}, err
		}
		return ctrl.Result{Requeue: true}, nil
	}

	switch image.Status.Phase {
	case bannerbearv1.PhasePending:
		return r.reconcilePending(ctx, &image)
	case bannerbearv1.PhaseSubmitted, bannerbearv1.PhaseRendering:
		return r.reconcilePolling(ctx, &image)
	case bannerbearv1.PhaseDownloading:
		return r.reconcileDownloading(ctx, &image)
	case bannerbearv1.PhaseCompleted:
		return ctrl.Result{}, nil
	case bannerbearv1.PhaseFailed:
		return r.reconcileFailed(ctx, &image)
	default:
		logger.Info("Unknown phase, resetting to Pending", "phase", image.Status.Phase)
		image.Status.Phase = bannerbearv1.PhasePending
		return ctrl.Result{Requeue: true}, r.Status().Update(ctx, &image)
	}
}

// reconcilePending creates the render, or signs an on-demand URL
func (r *BannerbearImageReconciler) reconcilePending(ctx context.Context, image *bannerbearv1.BannerbearImage) (ctrl.Result, error) {
	ctx, span := tracer.Start(ctx, "reconcile_pending")
	defer span.End()
	logger := log.FromContext(ctx)

	apiKey, err := r.getAPIKey(ctx, image)
	if err != nil {
		return r.fail(ctx, image, err, "Failed to read API key")
	}

	mods := toModifications(image.Spec.Modifications)

	if image.Spec.Mode == bannerbearv1.ModeSignedURL {
		baseID := image.Spec.BaseId
		if baseID == "" {
			baseID = image.Spec.Template
		}
		signed, err := bannerbear.SignURL(apiKey, baseID, mods, image.Spec.Synchronous)
		if err != nil {
			return r.fail(ctx, image, err, "Failed to sign URL")
		}
		image.Status.SignedUrl = signed
		image.Status.StoredFiles = []bannerbearv1.StoredFileStatus{{Format: "jpg", SourceUrl: signed}}
		image.Status.Phase = bannerbearv1.PhaseDownloading
		return ctrl.Result{Requeue: true}, r.Status().Update(ctx, image)
	}

	bb := r.newBannerbearClient(ctx, apiKey)
	created, err := bb.CreateImage(ctx, image.Spec.Template, bannerbear.CreateImageParams{
		Modifications: mods,
		WebhookURL:    image.Spec.WebhookUrl,
		Transparent:   image.Spec.Transparent,
		RenderPDF:     image.Spec.RenderPdf,
		Metadata:      metadataValue(image.Spec.Metadata),
	}, image.Spec.Synchronous)
	if err != nil {
		logger.Error(err, "Failed to create image", "template", image.Spec.Template)
		return r.fail(ctx, image, err, "Failed to create image")
	}

	span.SetAttributes(attribute.String("bannerbear.image_uid", created.UID))
	image.Status.ImageUid = created.UID
	if created.Status == bannerbear.StatusCompleted {
		image.Status.StoredFiles = renderedFiles(created, image.Spec)
		image.Status.Phase = bannerbearv1.PhaseDownloading
		return ctrl.Result{Requeue: true}, r.Status().Update(ctx, image)
	}

	image.Status.Phase = bannerbearv1.PhaseSubmitted
	return ctrl.Result{RequeueAfter: pollInterval}, r.Status().Update(ctx, image)
}

// reconcilePolling polls Bannerbear until the image is rendered
func (r *BannerbearImageReconciler) reconcilePolling(ctx context.Context, image *bannerbearv1.BannerbearImage) (ctrl.Result, error) {
	ctx, span := tracer.Start(ctx, "reconcile_polling")
	defer span.End()
	logger := log.FromContext(ctx)

	apiKey, err := r.getAPIKey(ctx, image)
	if err != nil {
		return r.fail(ctx, image, err, "Failed to read API key")
	}

	bb := r.newBannerbearClient(ctx, apiKey)
	rendered, err := bb.GetImage(ctx, image.Status.ImageUid)
	if err != nil {
		if bannerbear.IsNotFound(err) {
			return r.fail(ctx, image, err, "Image disappeared")
		}
		logger.Error(err, "Failed to get image status", "uid", image.Status.ImageUid)
		return ctrl.Result{RequeueAfter: 2 * pollInterval}, nil
	}

	span.SetAttributes(attribute.String("bannerbear.status", rendered.Status))
	switch rendered.Status {
	case bannerbear.StatusCompleted:
		image.Status.StoredFiles = renderedFiles(rendered, image.Spec)
		image.Status.Phase = bannerbearv1.PhaseDownloading
		return ctrl.Result{Requeue: true}, r.Status().Update(ctx, image)

	case bannerbear.StatusFailed:
		return r.fail(ctx, image, fmt.Errorf("image %s failed to render", rendered.UID), "Bannerbear render failed")

	default:
		if image.Status.Phase != bannerbearv1.PhaseRendering {
			image.Status.Phase = bannerbearv1.PhaseRendering
			if err := r.Status().Update(ctx, image); err != nil {
				return ctrl.Result{}, err
			}
		}
		return ctrl.Result{RequeueAfter: pollInterval}, nil
	}
}

// reconcileDownloading copies rendered files into object storage
func (r *BannerbearImageReconciler) reconcileDownloading(ctx context.Context, image *bannerbearv1.BannerbearImage) (ctrl.Result, error) {
	ctx, span := tracer.Start(ctx, "reconcile_downloading")
	defer span.End()
	logger := log.FromContext(ctx)

	if image.Status.SignedUrl != "" {
		apiKey, err := r.getAPIKey(ctx, image)
		if err != nil {
			return r.fail(ctx, image, err, "Failed to read API key")
		}
		if !bannerbear.VerifySignedURL(apiKey, image.Status.SignedUrl) {
			logger.Info("API key changed since the URL was signed, signing again")
			image.Status.SignedUrl = ""
			image.Status.StoredFiles = nil
			image.Status.Phase = bannerbearv1.PhasePending
			return ctrl.Result{Requeue: true}, r.Status().Update(ctx, image)
		}
	}

	bucket := image.Spec.Storage.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}
	tenantId := image.Spec.TenantId
	if tenantId == "" {
		tenantId = defaultTenant
	}

	for i, file := range image.Status.StoredFiles {
		if file.SourceUrl == "" || file.MinioKey != "" {
			continue
		}
		data, err := r.download(ctx, file.SourceUrl)
		if err != nil {
			logger.Error(err, "Failed to download rendered file", "format", file.Format)
			return r.fail(ctx, image, err, fmt.Sprintf("Failed to download %s", file.Format))
		}

		key := fmt.Sprintf("%s%s/%s/%d.%s", image.Spec.Storage.Prefix, tenantId, image.Name, i, file.Format)
		url, err := r.Store.Upload(ctx, bucket, key, data, getContentType(file.Format))
		if err != nil {
			logger.Error(err, "Failed to upload to MinIO", "key", key)
			return r.fail(ctx, image, err, fmt.Sprintf("Failed to upload %s to MinIO", file.Format))
		}

		image.Status.StoredFiles[i].MinioKey = key
		image.Status.StoredFiles[i].MinioUrl = url
		image.Status.StoredFiles[i].SizeBytes = int64(len(data))
	}

	now := metav1.Now()
	image.Status.Phase = bannerbearv1.PhaseCompleted
	image.Status.CompletionTime = &now
	image.Status.LastError = ""
	image.Status.ObservedGeneration = image.Generation
	setReadyCondition(image, metav1.ConditionTrue, "Completed", "Image rendered and stored in MinIO")
	return ctrl.Result{}, r.Status().Update(ctx, image)
}

// reconcileFailed schedules another attempt unless retries are exhausted or
// Bannerbear rejected the request outright
func (r *BannerbearImageReconciler) reconcileFailed(ctx context.Context, image *bannerbearv1.BannerbearImage) (ctrl.Result, error) {
	if image.Status.RetryCount >= maxRetries {
		return ctrl.Result{}, nil
	}
	cond := readyCondition(image)
	if cond != nil && cond.Reason == reasonRejected {
		return ctrl.Result{}, nil
	}
	if cond != nil {
		if wait := retryDelay - time.Since(cond.LastTransitionTime.Time); wait > 0 {
			return ctrl.Result{RequeueAfter: wait}, nil
		}
	}

	log.FromContext(ctx).Info("Retrying failed render", "retryCount", image.Status.RetryCount)
	image.Status.Phase = bannerbearv1.PhasePending
	image.Status.ImageUid = ""
	image.Status.SignedUrl = ""
	image.Status.StoredFiles = nil
	setReadyCondition(image, metav1.ConditionFalse, "Retrying", image.Status.LastError)
	return ctrl.Result{Requeue: true}, r.Status().Update(ctx, image)
}

// getAPIKey reads the Bannerbear API key from a referenced Kubernetes Secret
func (r *BannerbearImageReconciler) getAPIKey(ctx context.Context, image *bannerbearv1.BannerbearImage) (string, error) {
	secretName := image.Spec.ApiKeySecretRef.Name
	if secretName == "" {
		secretName = defaultSecretName
	}
	secretKey := image.Spec.ApiKeySecretRef.Key
	if secretKey == "" {
		secretKey = bannerbear.APIKeyEnv
	}

	var secret corev1.Secret
	if err := r.Get(ctx, types.NamespacedName{
		Name:      secretName,
		Namespace: image.Namespace,
	}, &secret); err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", secretName, err)
	}

	value, ok := secret.Data[secretKey]
	if !ok || len(value) == 0 {
		return "", fmt.Errorf("key %s not found in secret %s", secretKey, secretName)
	}

	return string(value), nil
}

func (r *BannerbearImageReconciler) newBannerbearClient(ctx context.Context, apiKey string) *bannerbear.Client {
	opts := []bannerbear.Option{bannerbear.WithLogger(log.FromContext(ctx))}
	if r.BannerbearURL != "" {
		opts = append(opts, bannerbear.WithBaseURL(r.BannerbearURL))
	}
	if r.BannerbearSyncURL != "" {
		opts = append(opts, bannerbear.WithSyncBaseURL(r.BannerbearSyncURL))
	}
	if r.HTTPClient != nil {
		opts = append(opts, bannerbear.WithHTTPClient(r.HTTPClient))
	}
	return bannerbear.NewClient(apiKey, opts...)
}

// download fetches a rendered file from Bannerbear's CDN
func (r *BannerbearImageReconciler) download(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "bannerbear_download_file")
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	httpClient := r.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read download body: %w", err)
	}

	span.SetAttributes(attribute.Int("bannerbear.file_size", len(data)))
	return data, nil
}

// fail records err on the status and requeues. A 4xx other than 429 from
// Bannerbear is not retried.
func (r *BannerbearImageReconciler) fail(ctx context.Context, image *bannerbearv1.BannerbearImage, err error, message string) (ctrl.Result, error) {
	reason := reasonFailed
	if status := bannerbear.StatusCode(err); status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		reason = reasonRejected
	}

	image.Status.Phase = bannerbearv1.PhaseFailed
	image.Status.LastError = fmt.Sprintf("%s: %v", message, err)
	image.Status.RetryCount++
	setReadyCondition(image, metav1.ConditionFalse, reason, image.Status.LastError)
	if updateErr := r.Status().Update(ctx, image); updateErr != nil {
		return ctrl.Result{}, updateErr
	}
	if reason == reasonRejected {
		return ctrl.Result{}, nil
	}
	return ctrl.Result{RequeueAfter: errorInterval}, nil
}

// cleanupImage deletes MinIO objects when the CR is deleted
func (r *BannerbearImageReconciler) cleanupImage(ctx context.Context, image *bannerbearv1.BannerbearImage) {
	ctx, span := tracer.Start(ctx, "cleanup_image")
	defer span.End()
	logger := log.FromContext(ctx)

	bucket := image.Spec.Storage.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}

	for _, file := range image.Status.StoredFiles {
		if file.MinioKey == "" {
			continue
		}
		if err := r.Store.Delete(ctx, bucket, file.MinioKey); err != nil {
			logger.Error(err, "Failed to delete MinIO object during cleanup", "key", file.MinioKey)
		}
	}
}

// SetupWithManager sets up the controller with the Manager
func (r *BannerbearImageReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&bannerbearv1.BannerbearImage{}).
		Complete(r)
}

func renderedFiles(rendered *bannerbear.Image, spec bannerbearv1.BannerbearImageSpec) []bannerbearv1.StoredFileStatus {
	format := spec.Format
	if format == "" {
		format = "jpg"
	}
	source := rendered.ImageURLJPG
	if format == "png" {
		source = rendered.ImageURLPNG
	}
	if source == "" {
		source = rendered.ImageURL
	}

	files := []bannerbearv1.StoredFileStatus{{Format: format, SourceUrl: source}}
	if spec.RenderPdf && rendered.PDFURL != "" {
		files = append(files, bannerbearv1.StoredFileStatus{Format: "pdf", SourceUrl: rendered.PDFURL})
	}
	return files
}

func toModifications(specs []bannerbearv1.ModificationSpec) []bannerbear.Modification {
	mods := make([]bannerbear.Modification, 0, len(specs))
	for _, m := range specs {
		mod := bannerbear.Modification{
			Name:       m.Name,
			Text:       m.Text,
			Color:      optional(m.Color),
			Background: optional(m.Background),
			ImageURL:   optional(m.ImageUrl),
			FontFamily: optional(m.FontFamily),
			Effect:     optional(m.Effect),
		}
		if m.Hide {
			mod.Hide = ptr.To(true)
		}
		mods = append(mods, mod)
	}
	return mods
}

// optional maps an unset CR string to an unset layer property.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.To(s)
}

func metadataValue(metadata string) any {
	if metadata == "" {
		return nil
	}
	return metadata
}

func readyCondition(image *bannerbearv1.BannerbearImage) *bannerbearv1.BannerbearImageCondition {
	for i := range image.Status.Conditions {
		if image.Status.Conditions[i].Type == "Ready" {
			return &image.Status.Conditions[i]
		}
	}
	return nil
}

func setReadyCondition(image *bannerbearv1.BannerbearImage, status metav1.ConditionStatus, reason, message string) {
	image.Status.Conditions = []bannerbearv1.BannerbearImageCondition{
		{
			Type:               "Ready",
			Status:             string(status),
			LastTransitionTime: metav1.Now(),
			Reason:             reason,
			Message:            message,
		},
	}
}

// getContentType returns the MIME type for a file format
func getContentType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
