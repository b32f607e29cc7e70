package guard_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redhat-developer/service-binding-properties/pkg/config"
	"github.com/redhat-developer/service-binding-properties/pkg/guard"
)

func TestEnabled(t *testing.T) {
	testCases := []struct {
		name     string
		settings map[string]interface{}
		kind     string
		expected bool
	}{
		{name: "enabled without configuration", kind: "MySQL", expected: true},
		{name: "kind flag false disables", settings: map[string]interface{}{"bindings.mysql.enabled": false}, kind: "MySQL", expected: false},
		{name: "kind flag true enables", settings: map[string]interface{}{"bindings.mysql.enabled": true}, kind: "MySQL", expected: true},
		{name: "other kind flag is ignored", settings: map[string]interface{}{"bindings.kafka.enabled": false}, kind: "MySQL", expected: true},
		{name: "global flag false disables", settings: map[string]interface{}{"bindings.enabled": false}, kind: "MySQL", expected: false},
		{name: "global flag false wins over kind flag", settings: map[string]interface{}{"bindings.enabled": false, "bindings.mysql.enabled": true}, kind: "MySQL", expected: false},
		{name: "string values are parsed", settings: map[string]interface{}{"bindings.sqlserver.enabled": "false"}, kind: "SQLServer", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tc.settings {
				v.Set(k, val)
			}
			assert.Equal(t, tc.expected, guard.New(v).Enabled(tc.kind))
		})
	}
}

func TestNilConfigEnablesEverything(t *testing.T) {
	assert.True(t, guard.New(nil).Enabled("MySQL"))
	var g *guard.Guard
	assert.True(t, g.Enabled("MySQL"))
}

func TestKeys(t *testing.T) {
	g := guard.New(nil)
	assert.Equal(t, "bindings.enabled", g.GlobalKey())
	assert.Equal(t, "bindings.postgresql.enabled", g.Key("PostgreSQL"))

	g = guard.New(nil, guard.WithPrefix("org.springframework.cloud.bindings.boot."))
	assert.Equal(t, "org.springframework.cloud.bindings.boot.mysql.enabled", g.Key("MySQL"))
}

func TestEnvironmentAndFileAgree(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("bindings:\n  kafka:\n    enabled: false\n"), 0600))
	fromFile, err := config.New(file)
	require.NoError(t, err)

	t.Setenv("BINDINGS_KAFKA_ENABLED", "false")
	fromEnv, err := config.New("")
	require.NoError(t, err)

	for _, kind := range []string{"Kafka", "MySQL"} {
		assert.Equal(t, guard.New(fromFile).Enabled(kind), guard.New(fromEnv).Enabled(kind), kind)
	}
	assert.False(t, guard.New(fromEnv).Enabled("Kafka"))
}
