package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/redhat-developer/service-binding-properties/pkg/binding/awssm"
	"github.com/redhat-developer/service-binding-properties/pkg/properties"
)

func writeBinding(t *testing.T, root, name string, entries map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for k, v := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0600))
	}
}

func testOptions() *rootOptions {
	return &rootOptions{
		newKubeClient: func() (client.Client, error) {
			return nil, errors.New("no cluster")
		},
		newAWSSource: func(context.Context, string, string) (*awssm.Source, error) {
			return nil, errors.New("no aws")
		},
	}
}

func execute(t *testing.T, o *rootOptions, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(o)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProcessVolume(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "db", map[string]string{
		"type":     "MySQL",
		"host":     "h",
		"port":     "3306",
		"database": "d",
		"username": "u",
	})
	writeBinding(t, root, "kafka", map[string]string{
		"type":              "Kafka",
		"bootstrap-servers": "k:9092",
	})

	out, err := execute(t, testOptions(), "process", "--root", root, "-o", "properties")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, `spring.datasource.username=u`)
	assert.Contains(t, lines, `spring.datasource.url=jdbc:mysql://h:3306/d`)
	assert.Contains(t, lines, `spring.kafka.bootstrap-servers=k:9092`)
	assert.Contains(t, lines, `k8s.bindings.db.username=u`)
}

func TestProcessDriverClassName(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "db", map[string]string{"type": "MySQL", "username": "u"})
	const driverKey = "spring.datasource.driver-class-name"

	t.Run("unset without capability", func(t *testing.T) {
		out, err := execute(t, testOptions(), "process", "--root", root, "-o", "json")
		require.NoError(t, err)
		assert.NotContains(t, out, driverKey)
	})

	t.Run("configured capability", func(t *testing.T) {
		t.Setenv("BINDINGS_CAPABILITIES", "com.mysql.cj.jdbc.Driver")
		out, err := execute(t, testOptions(), "process", "--root", root, "-o", "properties")
		require.NoError(t, err)
		assert.Contains(t, out, driverKey+"=com.mysql.cj.jdbc.Driver\n")
	})

	t.Run("driver jar on the classpath", func(t *testing.T) {
		lib := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(lib, "mariadb-java-client-3.3.3.jar"), nil, 0600))
		out, err := execute(t, testOptions(), "process", "--root", root, "--classpath", lib, "-o", "properties")
		require.NoError(t, err)
		assert.Contains(t, out, driverKey+"=org.mariadb.jdbc.Driver\n")
	})

	t.Run("sql driver registry when enabled", func(t *testing.T) {
		t.Setenv("BINDINGS_PROBE_SQL_DRIVERS", "true")
		out, err := execute(t, testOptions(), "process", "--root", root, "-o", "properties")
		require.NoError(t, err)
		assert.Contains(t, out, driverKey+"=com.mysql.cj.jdbc.Driver\n")
	})
}

func TestProcessDisabledByConfigFile(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "kafka", map[string]string{
		"type":              "Kafka",
		"bootstrap-servers": "k:9092",
	})
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
bindings:
  kafka:
    enabled: false
  flattened:
    enabled: false
`), 0600))

	out, err := execute(t, testOptions(), "process", "--config", cfg, "--root", root, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, out)
}

func TestProcessMetricsFile(t *testing.T) {
	root := t.TempDir()
	writeBinding(t, root, "cache", map[string]string{"type": "Redis", "host": "r"})
	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	_, err := execute(t, testOptions(), "process", "--root", root, "--metrics-file", metricsFile)
	require.NoError(t, err)

	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `service_binding_properties_bindings_processed_total{kind="Redis"} 1`)
}

func TestProcessKubernetes(t *testing.T) {
	o := testOptions()
	o.newKubeClient = func() (client.Client, error) {
		return fake.NewClientBuilder().WithScheme(scheme.Scheme).WithObjects(&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Namespace: "apps", Name: "broker"},
			Type:       corev1.SecretType("servicebinding.io/RabbitMQ"),
			Data:       map[string][]byte{"host": []byte("mq")},
		}).Build(), nil
	}

	out, err := execute(t, o, "process", "--source", "kubernetes", "--namespace", "apps", "-o", "env")
	require.NoError(t, err)
	assert.Contains(t, out, `SPRING_RABBITMQ_HOST="mq"`)
}

func TestProcessErrors(t *testing.T) {
	_, err := execute(t, testOptions(), "process", "--source", "consul")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSource))

	_, err = execute(t, testOptions(), "process", "--root", t.TempDir(), "-o", "toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, properties.ErrUnknownFormat))

	_, err = execute(t, testOptions(), "process", "--source", "aws")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no aws")
}

func TestKinds(t *testing.T) {
	t.Setenv("BINDINGS_REDIS_ENABLED", "false")

	out, err := execute(t, testOptions(), "kinds")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 17)
	assert.Equal(t, []string{"KIND", "FLAG", "ENABLED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Cassandra", "bindings.cassandra.enabled", "true"}, strings.Fields(lines[1]))
	assert.Contains(t, out, "bindings.redis.enabled")
	for _, line := range lines {
		if strings.HasPrefix(line, "Redis") {
			assert.Equal(t, []string{"Redis", "bindings.redis.enabled", "false"}, strings.Fields(line))
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, testOptions(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: dev")
}
