package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amplicon/internal/app"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := Execute(context.Background(), args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestHelp(t *testing.T) {
	code, out, _ := execute(t, "--help")
	assert.Equal(t, app.ExitOK, code)
	assert.Contains(t, out, "--primers")
	assert.Contains(t, out, "AMPLICON_")
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "--version")
	assert.Equal(t, app.ExitOK, code)
	assert.Contains(t, out, "dev")
}

func TestUnknownFlagIsUsage(t *testing.T) {
	code, _, errOut := execute(t, "--no-such-flag")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, errOut, "unknown flag")
}

func TestMissingRequiredIsUsage(t *testing.T) {
	code, _, errOut := execute(t, "--fasta", "a.fa")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, errOut, "--primers is required")
}

func TestBadFormatIsUsage(t *testing.T) {
	code, _, errOut := execute(t, "-f", "a.fa", "-p", "p.tsv", "--format", "xml")
	assert.Equal(t, app.ExitUsage, code)
	assert.Contains(t, errOut, `invalid --format "xml"`)
}

func TestFormats(t *testing.T) {
	code, out, _ := execute(t, "formats")
	assert.Equal(t, app.ExitOK, code)
	assert.Equal(t, []string{"fasta", "jsonl", "tsv"}, strings.Fields(out))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "in.fa")
	pr := filepath.Join(dir, "p.tsv")
	require.NoError(t, os.WriteFile(fa, []byte(">seq1 desc\nACGTGGGG\nTTTTACGT\n"), 0o644))
	require.NoError(t, os.WriteFile(pr, []byte("primer1\tACGT\tACGT\t8\t8\n"), 0o644))

	code, out, errOut := execute(t, "-f", fa, "-p", pr, "--header=false", "--log-level", "error")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, "seq1\tprimer1\t4\t12\t8\t16\tGGGGTTTT\n", out)
	assert.Empty(t, errOut)
}
