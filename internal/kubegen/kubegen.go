// Package kubegen renders Kubernetes ConfigMap and Secret manifests holding the
// assistant's environment.
package kubegen

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledger-calendar-bot/assistant/internal/settings"
	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func objectMeta(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: name,
		Labels:    map[string]string{"app": name},
	}
}

// ConfigMap holds every non secret setting at its default value
func ConfigMap(name string, sections []settings.Section) *corev1.ConfigMap {
	data := make(map[string]string)
	for _, section := range sections {
		for _, setting := range section.Settings {
			if setting.Secret {
				continue
			}
			data[setting.Env] = setting.Default
		}
	}

	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: objectMeta(name),
		Data:       data,
	}
}

// Secret holds every secret setting with an empty value to be filled in
func Secret(name string, sections []settings.Section) *corev1.Secret {
	data := make(map[string]string)
	for _, section := range sections {
		for _, setting := range section.Settings {
			if setting.Secret {
				data[setting.Env] = ""
			}
		}
	}

	return &corev1.Secret{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: objectMeta(name),
		Type:       corev1.SecretTypeOpaque,
		StringData: data,
	}
}

func GenerateConfigMap(filePath, name string, sections []settings.Section) error {
	return write(filePath, ConfigMap(name, sections))
}

func GenerateSecret(filePath, name string, sections []settings.Section) error {
	return write(filePath, Secret(name, sections))
}

// write goes through JSON so the API types keep their json field names
func write(filePath string, object interface{}) error {
	raw, err := json.Marshal(object)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("failed to decode manifest: %w", err)
	}
	if metadata, ok := manifest["metadata"].(map[string]interface{}); ok {
		delete(metadata, "creationTimestamp")
	}

	out, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}

	return os.WriteFile(filePath, append([]byte("---\n"), out...), 0644)
}
