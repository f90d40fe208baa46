package mimetype_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ember/pkg/mimetype"
)

func TestTable_Lookup(t *testing.T) {
	t.Parallel()

	table := mimetype.Default()

	t.Run("known extension", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "text/html", table.Lookup(".html"))
		require.Equal(t, "text/css", table.Lookup(".css"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "image/png", table.Lookup(".PNG"))
	})

	t.Run("unknown extension defaults to octet-stream", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, mimetype.DefaultType, table.Lookup(".xyz"))
		require.Equal(t, mimetype.DefaultType, table.Lookup(""))
	})
}

func TestTable_Merge(t *testing.T) {
	t.Parallel()

	table := mimetype.Default()
	table.Merge(mimetype.Table{
		".cgi":  "text/plain",
		".HTML": "text/x-custom",
	})

	require.Equal(t, "text/plain", table.Lookup(".cgi"))
	// Merge lowercases keys and overwrites existing entries.
	require.Equal(t, "text/x-custom", table.Lookup(".html"))
}

func TestParseYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses mapping", func(t *testing.T) {
		t.Parallel()

		table, err := mimetype.ParseYAML(strings.NewReader(".html: text/html\n.bin: application/firmware\n"))
		require.NoError(t, err)
		require.Equal(t, "text/html", table.Lookup(".html"))
		require.Equal(t, "application/firmware", table.Lookup(".bin"))
	})

	t.Run("adds missing dot", func(t *testing.T) {
		t.Parallel()

		table, err := mimetype.ParseYAML(strings.NewReader("css: text/css\n"))
		require.NoError(t, err)
		require.Equal(t, "text/css", table.Lookup(".css"))
	})

	t.Run("rejects malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := mimetype.ParseYAML(strings.NewReader("- not\n- a\n- mapping\n"))
		require.Error(t, err)
	})
}
