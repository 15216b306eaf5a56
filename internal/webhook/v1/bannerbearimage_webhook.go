package v1

import (
	"context"
	"fmt"
	"net/url"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/validation/field"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	bannerbearv1 "github.com/Tributary-ai-services/bannerbear-operator/api/v1"
	"github.com/Tributary-ai-services/bannerbear-operator/pkg/bannerbear"
)

var bannerbearimagelog = logf.Log.WithName("bannerbearimage-resource")

const (
	defaultSecretName = "bannerbear-api-secret"
	defaultBucket     = "bannerbear-renders"
	defaultTenant     = "default"
	defaultFormat     = "jpg"
)

// SetupBannerbearImageWebhookWithManager registers the webhook for BannerbearImage in the manager.
func SetupBannerbearImageWebhookWithManager(mgr ctrl.Manager) error {
	return ctrl.NewWebhookManagedBy(mgr).
		For(&bannerbearv1.BannerbearImage{}).
		WithValidator(&BannerbearImageCustomValidator{}).
		WithDefaulter(&BannerbearImageCustomDefaulter{}).
		Complete()
}

// +kubebuilder:webhook:path=/mutate-bannerbear-tas-ai-v1-bannerbearimage,mutating=true,failurePolicy=fail,sideEffects=None,groups=bannerbear.tas.ai,resources=bannerbearimages,verbs=create;update,versions=v1,name=mbannerbearimage-v1.kb.io,admissionReviewVersions=v1

// BannerbearImageCustomDefaulter fills in the mode, format, secret reference,
// bucket and tenant of a BannerbearImage.
//
// +kubebuilder:object:generate=false
type BannerbearImageCustomDefaulter struct{}

// Default implements webhook.CustomDefaulter.
func (d *BannerbearImageCustomDefaulter) Default(_ context.Context, obj runtime.Object) error {
	image, ok := obj.(*bannerbearv1.BannerbearImage)
	if !ok {
		return fmt.Errorf("expected a BannerbearImage but got %T", obj)
	}
	bannerbearimagelog.Info("Defaulting for BannerbearImage", "name", image.GetName())

	if image.Spec.Mode == "" {
		image.Spec.Mode = bannerbearv1.ModeAPI
	}
	if image.Spec.Format == "" {
		image.Spec.Format = defaultFormat
	}
	if image.Spec.ApiKeySecretRef.Name == "" {
		image.Spec.ApiKeySecretRef.Name = defaultSecretName
	}
	if image.Spec.ApiKeySecretRef.Key == "" {
		image.Spec.ApiKeySecretRef.Key = bannerbear.APIKeyEnv
	}
	if image.Spec.Storage.Bucket == "" {
		image.Spec.Storage.Bucket = defaultBucket
	}
	if image.Spec.TenantId == "" {
		image.Spec.TenantId = defaultTenant
	}

	return nil
}

// +kubebuilder:webhook:path=/validate-bannerbear-tas-ai-v1-bannerbearimage,mutating=false,failurePolicy=fail,sideEffects=None,groups=bannerbear.tas.ai,resources=bannerbearimages,verbs=create;update,versions=v1,name=vbannerbearimage-v1.kb.io,admissionReviewVersions=v1

// BannerbearImageCustomValidator validates BannerbearImage resources on
// create and update.
//
// +kubebuilder:object:generate=false
type BannerbearImageCustomValidator struct{}

// ValidateCreate implements webhook.CustomValidator.
func (v *BannerbearImageCustomValidator) ValidateCreate(_ context.Context, obj runtime.Object) (admission.Warnings, error) {
	image, ok := obj.(*bannerbearv1.BannerbearImage)
	if !ok {
		return nil, fmt.Errorf("expected a BannerbearImage but got %T", obj)
	}
	bannerbearimagelog.Info("Validation for BannerbearImage upon creation", "name", image.GetName())
	return v.validateBannerbearImage(image)
}

// ValidateUpdate implements webhook.CustomValidator.
func (v *BannerbearImageCustomValidator) ValidateUpdate(_ context.Context, oldObj, newObj runtime.Object) (admission.Warnings, error) {
	oldImage, ok := oldObj.(*bannerbearv1.BannerbearImage)
	if !ok {
		return nil, fmt.Errorf("expected a BannerbearImage but got %T", oldObj)
	}
	newImage, ok := newObj.(*bannerbearv1.BannerbearImage)
	if !ok {
		return nil, fmt.Errorf("expected a BannerbearImage but got %T", newObj)
	}
	bannerbearimagelog.Info("Validation for BannerbearImage upon update", "name", newImage.GetName())

	var warnings admission.Warnings
	if oldImage.Status.Phase == bannerbearv1.PhaseCompleted && oldImage.Spec.Template != newImage.Spec.Template {
		warnings = append(warnings, "Changing the template of a completed image does not render it again")
	}

	validationWarnings, err := v.validateBannerbearImage(newImage)
	warnings = append(warnings, validationWarnings...)
	return warnings, err
}

// ValidateDelete implements webhook.CustomValidator.
func (v *BannerbearImageCustomValidator) ValidateDelete(_ context.Context, obj runtime.Object) (admission.Warnings, error) {
	return nil, nil
}

func (v *BannerbearImageCustomValidator) validateBannerbearImage(image *bannerbearv1.BannerbearImage) (admission.Warnings, error) {
	var allErrs field.ErrorList
	var warnings admission.Warnings

	specPath := field.NewPath("spec")

	if image.Spec.Template == "" {
		allErrs = append(allErrs, field.Required(specPath.Child("template"), "template uid is required"))
	}

	switch image.Spec.Mode {
	case "", bannerbearv1.ModeAPI:
	case bannerbearv1.ModeSignedURL:
		if image.Spec.RenderPdf {
			allErrs = append(allErrs, field.Forbidden(specPath.Child("renderPdf"), "signed URLs render images only"))
		}
		if image.Spec.WebhookUrl != "" {
			allErrs = append(allErrs, field.Forbidden(specPath.Child("webhookUrl"), "signed URLs do not call webhooks"))
		}
		if image.Spec.Format == "png" {
			allErrs = append(allErrs, field.Forbidden(specPath.Child("format"), "signed URLs render jpg only"))
		}
	default:
		allErrs = append(allErrs, field.NotSupported(specPath.Child("mode"), image.Spec.Mode,
			[]string{bannerbearv1.ModeAPI, bannerbearv1.ModeSignedURL}))
	}

	switch image.Spec.Format {
	case "", "jpg", "png":
	default:
		allErrs = append(allErrs, field.NotSupported(specPath.Child("format"), image.Spec.Format, []string{"jpg", "png"}))
	}

	if image.Spec.Transparent && image.Spec.Format == "jpg" {
		warnings = append(warnings, "transparent backgrounds are only kept in png renders")
	}

	if image.Spec.WebhookUrl != "" {
		if u, err := url.Parse(image.Spec.WebhookUrl); err != nil || u.Scheme == "" || u.Host == "" {
			allErrs = append(allErrs, field.Invalid(specPath.Child("webhookUrl"), image.Spec.WebhookUrl, "must be an absolute URL"))
		}
	}

	seen := make(map[string]bool, len(image.Spec.Modifications))
	for i, mod := range image.Spec.Modifications {
		namePath := specPath.Child("modifications").Index(i).Child("name")
		if mod.Name == "" {
			allErrs = append(allErrs, field.Required(namePath, "layer name is required"))
			continue
		}
		if seen[mod.Name] {
			allErrs = append(allErrs, field.Duplicate(namePath, mod.Name))
		}
		seen[mod.Name] = true
	}

	if len(allErrs) > 0 {
		return warnings, apierrors.NewInvalid(
			schema.GroupKind{Group: bannerbearv1.GroupVersion.Group, Kind: "BannerbearImage"},
			image.Name,
			allErrs,
		)
	}

	return warnings, nil
}
