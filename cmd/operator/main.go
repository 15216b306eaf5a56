package main

import (
	"flag"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/server"

	bannerbearv1 "github.com/Tributary-ai-services/bannerbear-operator/api/v1"
	webhookv1 "github.com/Tributary-ai-services/bannerbear-operator/internal/webhook/v1"
	"github.com/Tributary-ai-services/bannerbear-operator/pkg/bannerbear"
	"github.com/Tributary-ai-services/bannerbear-operator/pkg/controllers"
	minioclient "github.com/Tributary-ai-services/bannerbear-operator/pkg/minio"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(bannerbearv1.AddToScheme(scheme))
}

func main() {
	var metricsAddr string
	var enableLeaderElection bool
	var enableWebhooks bool
	var probeAddr string
	var bannerbearURL string
	var bannerbearSyncURL string
	var httpTimeout time.Duration
	var minioEndpoint string
	var minioAccessKey string
	var minioSecretKey string
	var minioUseSSL bool

	flag.StringVar(&metricsAddr, "metrics-bind-address", ":8088", "The address the metric endpoint binds to.")
	flag.StringVar(&probeAddr, "health-probe-bind-address", ":8089", "The address the probe endpoint binds to.")
	flag.BoolVar(&enableLeaderElection, "leader-elect", false, "Enable leader election for controller manager.")
	flag.BoolVar(&enableWebhooks, "enable-webhooks", getEnvBool("ENABLE_WEBHOOKS", false), "Serve the defaulting and validating admission webhooks.")
	flag.StringVar(&bannerbearURL, "bannerbear-url", getEnv("BANNERBEAR_API_BASE_URL", bannerbear.DefaultBaseURL), "Bannerbear API base URL")
	flag.StringVar(&bannerbearSyncURL, "bannerbear-sync-url", getEnv("BANNERBEAR_SYNC_API_BASE_URL", bannerbear.DefaultSyncBaseURL), "Bannerbear synchronous API base URL")
	flag.DurationVar(&httpTimeout, "bannerbear-timeout", 60*time.Second, "Timeout for Bannerbear API calls and downloads")
	flag.StringVar(&minioEndpoint, "minio-endpoint", getEnv("MINIO_ENDPOINT", "minio-shared.tas-shared.svc.cluster.local:9000"), "MinIO endpoint")
	flag.StringVar(&minioAccessKey, "minio-access-key", getEnv("MINIO_ACCESS_KEY", "minioadmin"), "MinIO access key")
	flag.StringVar(&minioSecretKey, "minio-secret-key", getEnv("MINIO_SECRET_KEY", "minioadmin123"), "MinIO secret key")
	flag.BoolVar(&minioUseSSL, "minio-use-ssl", getEnvBool("MINIO_USE_SSL", false), "Connect to MinIO over TLS")

	opts := zap.Options{Development: true}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts)))

	setupLog.Info("Starting Bannerbear Image Operator",
		"version", "v1.0.0",
		"metrics-addr", metricsAddr,
		"probe-addr", probeAddr,
		"leader-election", enableLeaderElection,
		"webhooks", enableWebhooks,
		"bannerbear-url", bannerbearURL,
		"bannerbear-sync-url", bannerbearSyncURL,
		"minio-endpoint", minioEndpoint,
	)

	mc, err := minioclient.NewClient(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		setupLog.Error(err, "Failed to create MinIO client")
		os.Exit(1)
	}

	if publicURL := getEnv("MINIO_PUBLIC_URL", ""); publicURL != "" {
		mc.SetPublicURL(publicURL)
		setupLog.Info("MinIO public URL configured", "url", publicURL)
	}

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), ctrl.Options{
		Scheme: scheme,
		Metrics: server.Options{
			BindAddress: metricsAddr,
		},
		HealthProbeBindAddress:        probeAddr,
		LeaderElection:                enableLeaderElection,
		LeaderElectionID:              "bannerbear-operator-leader-election",
		LeaderElectionReleaseOnCancel: true,
	})
	if err != nil {
		setupLog.Error(err, "Unable to start manager")
		os.Exit(1)
	}

	if err = (&controllers.BannerbearImageReconciler{
		Client:            mgr.GetClient(),
		Scheme:            mgr.GetScheme(),
		BannerbearURL:     bannerbearURL,
		BannerbearSyncURL: bannerbearSyncURL,
		HTTPClient:        &http.Client{Timeout: httpTimeout},
		Store:             mc,
	}).SetupWithManager(mgr); err != nil {
		setupLog.Error(err, "Unable to create controller", "controller", "BannerbearImage")
		os.Exit(1)
	}

	if enableWebhooks {
		if err = webhookv1.SetupBannerbearImageWebhookWithManager(mgr); err != nil {
			setupLog.Error(err, "Unable to create webhook", "webhook", "BannerbearImage")
			os.Exit(1)
		}
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		setupLog.Error(err, "Unable to set up health check")
		os.Exit(1)
	}

	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		setupLog.Error(err, "Unable to set up ready check")
		os.Exit(1)
	}

	setupLog.Info("Starting manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		setupLog.Error(err, "Problem running manager")
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
