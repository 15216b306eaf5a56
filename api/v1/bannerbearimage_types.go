package v1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Render modes
const (
	// ModeAPI renders through POST /images and polls until completion.
	ModeAPI = "api"
	// ModeSignedURL fetches an on-demand signed URL without calling the API.
	ModeSignedURL = "signedUrl"
)

// Lifecycle phases
const (
	PhasePending     = "Pending"
	PhaseSubmitted   = "Submitted"
	PhaseRendering   = "Rendering"
	PhaseDownloading = "Downloading"
	PhaseCompleted   = "Completed"
	PhaseFailed      = "Failed"
)

// BannerbearImageSpec defines the desired state of BannerbearImage
type BannerbearImageSpec struct {
	// Template is the Bannerbear template uid
	// +kubebuilder:validation:MinLength=1
	Template string `json:"template"`

	// Modifications override template layers
	Modifications []ModificationSpec `json:"modifications,omitempty"`

	// Mode selects between the REST API and on-demand signed URLs
	// +kubebuilder:validation:Enum=api;signedUrl
	// +kubebuilder:default=api
	Mode string `json:"mode,omitempty"`

	// BaseId is the signed URL base used in signedUrl mode; defaults to Template
	BaseId string `json:"baseId,omitempty"`

	// Synchronous uses the synchronous API host (api mode) or the CDN host (signedUrl mode)
	Synchronous bool `json:"synchronous,omitempty"`

	// Format of the stored image; signedUrl mode renders jpg only
	// +kubebuilder:validation:Enum=jpg;png
	// +kubebuilder:default=jpg
	Format string `json:"format,omitempty"`

	// Transparent renders a transparent PNG background
	Transparent bool `json:"transparent,omitempty"`

	// RenderPdf also renders and stores a PDF
	RenderPdf bool `json:"renderPdf,omitempty"`

	// Metadata is passed through to Bannerbear
	Metadata string `json:"metadata,omitempty"`

	// WebhookUrl is notified by Bannerbear when rendering completes
	WebhookUrl string `json:"webhookUrl,omitempty"`

	// TenantId for multi-tenant isolation
	TenantId string `json:"tenantId,omitempty"`

	// ApiKeySecretRef references a Secret containing the Bannerbear API key
	ApiKeySecretRef SecretKeyRef `json:"apiKeySecretRef,omitempty"`

	// Storage configures where rendered images are stored
	Storage StorageSpec `json:"storage,omitempty"`
}

// ModificationSpec overrides one template layer
type ModificationSpec struct {
	// Name of the layer
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// Text replaces the layer text; an empty string blanks it
	Text *string `json:"text,omitempty"`

	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
	ImageUrl   string `json:"imageUrl,omitempty"`
	FontFamily string `json:"fontFamily,omitempty"`
	Effect     string `json:"effect,omitempty"`
	Hide       bool   `json:"hide,omitempty"`
}

// SecretKeyRef references a key in a Secret
type SecretKeyRef struct {
	// Name is the Secret name
	// +kubebuilder:default=bannerbear-api-secret
	Name string `json:"name,omitempty"`

	// Key is the key within the Secret
	// +kubebuilder:default=BANNERBEAR_API_KEY
	Key string `json:"key,omitempty"`
}

// StorageSpec configures MinIO storage
type StorageSpec struct {
	// Bucket is the MinIO bucket name
	// +kubebuilder:default=bannerbear-renders
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the object key prefix
	Prefix string `json:"prefix,omitempty"`
}

// BannerbearImageStatus defines the observed state of BannerbearImage
type BannerbearImageStatus struct {
	// Phase is the current phase of the render lifecycle
	// +kubebuilder:validation:Enum=Pending;Submitted;Rendering;Downloading;Completed;Failed
	Phase string `json:"phase,omitempty"`

	// Conditions represent the latest available observations
	Conditions []BannerbearImageCondition `json:"conditions,omitempty"`

	// ImageUid is the Bannerbear image uid (api mode)
	ImageUid string `json:"imageUid,omitempty"`

	// SignedUrl is the on-demand render URL (signedUrl mode)
	SignedUrl string `json:"signedUrl,omitempty"`

	// StoredFiles lists the rendered files copied to MinIO
	StoredFiles []StoredFileStatus `json:"storedFiles,omitempty"`

	// StartTime is when processing started
	StartTime *metav1.Time `json:"startTime,omitempty"`

	// CompletionTime is when processing completed
	CompletionTime *metav1.Time `json:"completionTime,omitempty"`

	// RetryCount is the number of retries attempted
	RetryCount int `json:"retryCount,omitempty"`

	// LastError is the last error message
	LastError string `json:"lastError,omitempty"`

	// ObservedGeneration is the generation of the spec that was last processed
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// BannerbearImageCondition describes the state of a BannerbearImage at a certain point
type BannerbearImageCondition struct {
	// Type of condition
	// +kubebuilder:validation:Enum=Ready
	Type string `json:"type"`

	// Status of the condition
	// +kubebuilder:validation:Enum=True;False;Unknown
	Status string `json:"status"`

	// LastTransitionTime is the last time the condition transitioned
	LastTransitionTime metav1.Time `json:"lastTransitionTime,omitempty"`

	// Reason is a unique, one-word, CamelCase reason
	Reason string `json:"reason,omitempty"`

	// Message is a human-readable message
	Message string `json:"message,omitempty"`
}

// StoredFileStatus describes one rendered file
type StoredFileStatus struct {
	// Format of the file (jpg, png or pdf)
	Format string `json:"format"`

	// SourceUrl is where the file was rendered by Bannerbear
	SourceUrl string `json:"sourceUrl,omitempty"`

	// MinioKey is the permanent MinIO object key
	MinioKey string `json:"minioKey,omitempty"`

	// MinioUrl is the permanent MinIO URL
	MinioUrl string `json:"minioUrl,omitempty"`

	// SizeBytes is the file size
	SizeBytes int64 `json:"sizeBytes,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
//+kubebuilder:printcolumn:name="Template",type="string",JSONPath=".spec.template",description="Template uid"
//+kubebuilder:printcolumn:name="Mode",type="string",JSONPath=".spec.mode",description="Render mode"
//+kubebuilder:printcolumn:name="Phase",type="string",JSONPath=".status.phase",description="Current phase"
//+kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"
//+kubebuilder:resource:shortName=bbi

// BannerbearImage is the Schema for the bannerbearimages API
type BannerbearImage struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   BannerbearImageSpec   `json:"spec,omitempty"`
	Status BannerbearImageStatus `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// BannerbearImageList contains a list of BannerbearImage
type BannerbearImageList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []BannerbearImage `json:"items"`
}

func init() {
	SchemeBuilder.Register(&BannerbearImage{}, &BannerbearImageList{})
}
