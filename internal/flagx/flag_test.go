package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-a", "-d", "-config"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "keeps allowed flag with separate value",
			args: []string{"-a", ":8080", "-x", "nope"},
			want: []string{"-a", ":8080"},
		},
		{
			name: "keeps allowed flag in equals form",
			args: []string{"-config=/etc/app.json", "-junk=1"},
			want: []string{"-config=/etc/app.json"},
		},
		{
			name: "value that looks like a flag is not swallowed",
			args: []string{"-a", "-d", "dsn"},
			want: []string{"-a", "-d", "dsn"},
		},
		{
			name: "nothing allowed",
			args: []string{"-x", "1", "-y=2"},
			want: []string{},
		},
		{
			name: "empty input",
			args: nil,
			want: []string{},
		},
		{
			name: "mixed forms",
			args: []string{"-a", ":9090", "-config=/tmp/c.json", "-z", "skip"},
			want: []string{"-a", ":9090", "-config=/tmp/c.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"app", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long flag", func(t *testing.T) {
		os.Args = []string{"app", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("equals form", func(t *testing.T) {
		os.Args = []string{"app", "-config=/path/eq.json"}
		assert.Equal(t, "/path/eq.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"app", "-a", ":8080"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last occurrence wins", func(t *testing.T) {
		os.Args = []string{"app", "-c", "/path/1.json", "-c", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}
