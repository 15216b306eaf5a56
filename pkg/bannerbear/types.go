package bannerbear

import "encoding/json"

// Render status values reported by the API.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Modification overrides one layer of a template, identified by Name. nil
// properties are left as designed; a non-nil empty Text blanks the layer.
type Modification struct {
	Name        string   `json:"name"`
	Text        *string  `json:"text,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Background  *string  `json:"background,omitempty"`
	FontFamily  *string  `json:"font_family,omitempty"`
	TextAlignH  *string  `json:"text_align_h,omitempty"`
	TextAlignV  *string  `json:"text_align_v,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Effect      *string  `json:"effect,omitempty"`
	AnchorX     *string  `json:"anchor_x,omitempty"`
	AnchorY     *string  `json:"anchor_y,omitempty"`
	Target      *string  `json:"target,omitempty"`
	BarCodeData *string  `json:"bar_code_data,omitempty"`
	ChartData   *string  `json:"chart_data,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
	Hide        *bool    `json:"hide,omitempty"`
	ShiftX      *float64 `json:"shift_x,omitempty"`
	ShiftY      *float64 `json:"shift_y,omitempty"`
}

// CreateImageParams is the body of POST /images, minus the template uid.
type CreateImageParams struct {
	Modifications []Modification `json:"modifications"`
	WebhookURL    string         `json:"webhook_url,omitempty"`
	Transparent   bool           `json:"transparent,omitempty"`
	RenderPDF     bool           `json:"render_pdf,omitempty"`
	Metadata      any            `json:"metadata"`
}

// CreateVideoParams is the body of POST /videos, minus the video template uid.
type CreateVideoParams struct {
	InputMediaURL    string           `json:"input_media_url,omitempty"`
	Modifications    []Modification   `json:"modifications,omitempty"`
	Frames           [][]Modification `json:"frames,omitempty"`
	FrameDurations   []float64        `json:"frame_durations,omitempty"`
	CreateGifPreview bool             `json:"create_gif_preview,omitempty"`
	Zoom             bool             `json:"zoom,omitempty"`
	ZoomFactor       int              `json:"zoom_factor,omitempty"`
	TrimStartTime    string           `json:"trim_start_time,omitempty"`
	TrimEndTime      string           `json:"trim_end_time,omitempty"`
	WebhookURL       string           `json:"webhook_url,omitempty"`
	Metadata         any              `json:"metadata,omitempty"`
}

// UpdateVideoParams is the body of PATCH /videos, minus the video uid.
type UpdateVideoParams struct {
	Approved      bool           `json:"approved,omitempty"`
	Transcript    []string       `json:"transcript,omitempty"`
	Modifications []Modification `json:"modifications,omitempty"`
}

// CreateCollectionParams is the body of POST /collections, minus the template set uid.
type CreateCollectionParams struct {
	Modifications []Modification `json:"modifications"`
	WebhookURL    string         `json:"webhook_url,omitempty"`
	Transparent   bool           `json:"transparent,omitempty"`
	Metadata      any            `json:"metadata,omitempty"`
}

// CreateScreenshotParams is the body of POST /screenshots, minus the page url.
type CreateScreenshotParams struct {
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Mobile     bool   `json:"mobile,omitempty"`
	Language   string `json:"language,omitempty"`
	WebhookURL string `json:"webhook_url,omitempty"`
	Metadata   any    `json:"metadata,omitempty"`
}

// CreateAnimatedGifParams is the body of POST /animated_gifs, minus the template uid.
type CreateAnimatedGifParams struct {
	Frames         [][]Modification `json:"frames"`
	FPS            float64          `json:"fps,omitempty"`
	FrameDurations []float64        `json:"frame_durations,omitempty"`
	Loop           *bool            `json:"loop,omitempty"`
	InputMediaURL  string           `json:"input_media_url,omitempty"`
	WebhookURL     string           `json:"webhook_url,omitempty"`
	Metadata       any              `json:"metadata,omitempty"`
}

// MovieInput is one clip of a movie.
type MovieInput struct {
	AssetURL string  `json:"asset_url"`
	Trim     string  `json:"trim_to_length_in_seconds,omitempty"`
	Mask     string  `json:"mask_url,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// CreateMovieParams is the body of POST /movies. Nothing is injected.
type CreateMovieParams struct {
	Width         int          `json:"width,omitempty"`
	Height        int          `json:"height,omitempty"`
	Transition    string       `json:"transition,omitempty"`
	SoundtrackURL string       `json:"soundtrack_url,omitempty"`
	Inputs        []MovieInput `json:"inputs"`
	WebhookURL    string       `json:"webhook_url,omitempty"`
	Metadata      any          `json:"metadata,omitempty"`
}

// UpdateTemplateParams is the body of PATCH /templates/{uid}.
type UpdateTemplateParams struct {
	Name     string   `json:"name,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Metadata any      `json:"metadata,omitempty"`
}

// Image is a rendered (or rendering) image.
type Image struct {
	UID           string          `json:"uid"`
	Status        string          `json:"status"`
	SelfURL       string          `json:"self"`
	Template      string          `json:"template"`
	TemplateName  string          `json:"template_name,omitempty"`
	ImageURL      string          `json:"image_url"`
	ImageURLPNG   string          `json:"image_url_png,omitempty"`
	ImageURLJPG   string          `json:"image_url_jpg,omitempty"`
	PDFURL        string          `json:"pdf_url,omitempty"`
	Width         int             `json:"width,omitempty"`
	Height        int             `json:"height,omitempty"`
	RenderPDF     bool            `json:"render_pdf"`
	Transparent   bool            `json:"transparent"`
	WebhookURL    string          `json:"webhook_url,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Modifications []Modification  `json:"modifications,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// Video is a rendered (or rendering) video.
type Video struct {
	UID             string          `json:"uid"`
	Status          string          `json:"status"`
	SelfURL         string          `json:"self"`
	VideoTemplate   string          `json:"video_template"`
	InputMediaURL   string          `json:"input_media_url,omitempty"`
	PercentRendered int             `json:"percent_rendered"`
	VideoURL        string          `json:"video_url"`
	GifPreviewURL   string          `json:"gif_preview_url,omitempty"`
	Approved        bool            `json:"approved"`
	Transcription   []string        `json:"transcription,omitempty"`
	Length          float64         `json:"length_in_seconds,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// Collection is a set of images rendered from one template set.
type Collection struct {
	UID         string            `json:"uid"`
	Status      string            `json:"status"`
	SelfURL     string            `json:"self"`
	TemplateSet string            `json:"template_set"`
	ImageURLs   map[string]string `json:"image_urls,omitempty"`
	Images      []Image           `json:"images,omitempty"`
	Metadata    json.RawMessage   `json:"metadata,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

// Screenshot is a captured web page.
type Screenshot struct {
	UID                string          `json:"uid"`
	Status             string          `json:"status"`
	SelfURL            string          `json:"self"`
	URL                string          `json:"url"`
	Width              int             `json:"width,omitempty"`
	Height             int             `json:"height,omitempty"`
	Mobile             bool            `json:"mobile"`
	ScreenshotImageURL string          `json:"screenshot_image_url"`
	Metadata           json.RawMessage `json:"metadata,omitempty"`
	CreatedAt          string          `json:"created_at"`
}

// AnimatedGif is a gif assembled from template frames.
type AnimatedGif struct {
	UID            string           `json:"uid"`
	Status         string           `json:"status"`
	SelfURL        string           `json:"self"`
	Template       string           `json:"template"`
	ImageURL       string           `json:"image_url"`
	Frames         [][]Modification `json:"frames,omitempty"`
	FPS            float64          `json:"fps,omitempty"`
	FrameDurations []float64        `json:"frame_durations,omitempty"`
	Metadata       json.RawMessage  `json:"metadata,omitempty"`
	CreatedAt      string           `json:"created_at"`
}

// Movie is a video stitched from several inputs.
type Movie struct {
	UID             string          `json:"uid"`
	Status          string          `json:"status"`
	SelfURL         string          `json:"self"`
	Width           int             `json:"width,omitempty"`
	Height          int             `json:"height,omitempty"`
	PercentRendered int             `json:"percent_rendered"`
	MovieURL        string          `json:"movie_url"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// AvailableModification describes a layer a template lets callers override.
type AvailableModification struct {
	Name       string  `json:"name"`
	Text       *string `json:"text,omitempty"`
	Color      *string `json:"color,omitempty"`
	Background *string `json:"background,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
}

// Template is a stored image design.
type Template struct {
	UID                    string                  `json:"uid"`
	Name                   string                  `json:"name"`
	Width                  int                     `json:"width"`
	Height                 int                     `json:"height"`
	PreviewURL             string                  `json:"preview_url,omitempty"`
	Tags                   []string                `json:"tags,omitempty"`
	AvailableModifications []AvailableModification `json:"available_modifications,omitempty"`
	Metadata               json.RawMessage         `json:"metadata,omitempty"`
	CreatedAt              string                  `json:"created_at"`
	UpdatedAt              string                  `json:"updated_at,omitempty"`
}

// TemplateSet groups templates rendered together as a collection.
type TemplateSet struct {
	UID                    string                  `json:"uid"`
	Name                   string                  `json:"name"`
	Templates              []Template              `json:"templates,omitempty"`
	AvailableModifications []AvailableModification `json:"available_modifications,omitempty"`
	CreatedAt              string                  `json:"created_at"`
	UpdatedAt              string                  `json:"updated_at,omitempty"`
}

// VideoTemplate is a stored video design.
type VideoTemplate struct {
	UID                    string                  `json:"uid"`
	Name                   string                  `json:"name"`
	Width                  int                     `json:"width"`
	Height                 int                     `json:"height"`
	RenderType             string                  `json:"render_type,omitempty"`
	ApprovalRequired       bool                    `json:"approval_required"`
	Template               *Template               `json:"template,omitempty"`
	AvailableModifications []AvailableModification `json:"available_modifications,omitempty"`
	CreatedAt              string                  `json:"created_at"`
}

// Account holds quota and usage counters.
type Account struct {
	UID               string `json:"uid"`
	Status            string `json:"status"`
	Plan              string `json:"paid_plan_name,omitempty"`
	APIQuota          int    `json:"api_quota"`
	APIUsage          int    `json:"api_usage"`
	CurrentImageCount int    `json:"current_image_count,omitempty"`
	CurrentVideoCount int    `json:"current_video_count,omitempty"`
	QuotaResetDate    string `json:"quota_reset_date,omitempty"`
	CreatedAt         string `json:"created_at"`
}

// Fonts maps font group names to the font families available in each.
type Fonts map[string][]string

// Effects lists the image effects supported by image_url modifications.
type Effects []string
