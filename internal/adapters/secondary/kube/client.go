package kube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"prediction-service/internal/config"
	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type kubeClient struct {
	client    kubernetes.Interface
	enabled   bool
	namespace string
}

// NewKubeClient builds the serving-probe adapter. Config precedence:
// in-cluster, explicit kubeconfig path, then the default kubeconfig location.
func NewKubeClient(cfg *config.KubernetesConfig) (ports.KubeClient, error) {
	if !cfg.Enabled {
		return &kubeClient{enabled: false}, nil
	}

	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create k8s client: %w", err)
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "model-serving"
	}

	return &kubeClient{
		client:    client,
		enabled:   true,
		namespace: namespace,
	}, nil
}

func (c *kubeClient) IsAvailable() bool {
	return c.enabled
}

func (c *kubeClient) GetServingStatus(ctx context.Context, name string) (*ports.ServingStatus, error) {
	if !c.enabled {
		return nil, domain.ErrServingProbeDisabled
	}

	deployment, err := c.client.AppsV1().Deployments(c.namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, domain.ErrServingNotFound
		}
		return nil, fmt.Errorf("get serving deployment %s/%s: %w", c.namespace, name, err)
	}

	ready := deployment.Status.ReadyReplicas
	total := deployment.Status.Replicas
	return &ports.ServingStatus{
		Name:          name,
		Namespace:     c.namespace,
		ReadyReplicas: ready,
		TotalReplicas: total,
		Available:     total > 0 && ready == total,
	}, nil
}
