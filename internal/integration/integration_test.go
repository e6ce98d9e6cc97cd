package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amplicon/internal/app"
	"amplicon/internal/cli"
	"amplicon/internal/output"
	"amplicon/pkg/api"
)

func write(t *testing.T, dir, name, data string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := cli.Execute(context.Background(), args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGTGGGGTTTTACGT\n>seq2\nCCCCCCCC\n")
	pr := write(t, dir, "p.tsv", "primer1\tACGT\tACGT\t8\t8\n")

	code, out, errOut := run(t, "-f", fa, "-p", pr)
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, output.TSVHeader+"\nseq1\tprimer1\t4\t12\t8\t16\tGGGGTTTT\n", out)
}

func TestShortPrimerLineSkipped(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGTGGGGTTTTACGT\n")
	pr := write(t, dir, "p.tsv", "broken\tACGT\tACGT\t8\nprimer1\tACGT\tACGT\t8\t8\n")

	code, out, errOut := run(t, "-f", fa, "-p", pr, "--header=false", "--log-format", "text")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, "seq1\tprimer1\t4\t12\t8\t16\tGGGGTTTT\n", out)
	assert.Contains(t, errOut, "skipping primer line")
	assert.Contains(t, errOut, "line=1")
}

func TestDisjointPairsDoNotCross(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGTGGGGTTTTACGTCCAATTGGAATTCCGGTT\n")
	pr := write(t, dir, "p.yaml", `primers:
  - {name: good, forward: ACGT, reverse: ACGT, min_insert: 8, max_insert: 8}
  - {name: other, forward: CCAA, reverse: AACC, expected_length: 10, margin: 2}
  - {name: ambiguous, forward: ACNT, reverse: ACGT, min_insert: 0, max_insert: 100}
`)
	code, out, errOut := run(t, "-f", fa, "-p", pr, "--header=false", "--ordered", "--log-format", "text")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t,
		"seq1\tgood\t4\t12\t8\t16\tGGGGTTTT\n"+
			"seq1\tother\t20\t30\t10\t18\tTTGGAATTCC\n",
		out)
	assert.Contains(t, errOut, "skipping primer entry")
	assert.Contains(t, errOut, "name=ambiguous")
}

func TestNonTextInsertSkipsOnlyThatRow(t *testing.T) {
	dir := t.TempDir()
	// 0xFF at offset 4; a clean insert "CC" sits at 10..12.
	fa := write(t, dir, "in.fa", ">s\nACGT\xffGACGTCCACGT\n>t\nACGTGGGGTTTTACGT\n")
	pr := write(t, dir, "p.tsv", "p\tACGT\tACGT\t0\t100\n")

	code, out, errOut := run(t, "-f", fa, "-p", pr, "--header=false", "--ordered", "--log-format", "text")
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t,
		"s\tp\t10\t12\t2\t10\tCC\n"+
			"t\tp\t4\t12\t8\t16\tGGGGTTTT\n",
		out)
	assert.Equal(t, 2, strings.Count(errOut, "skipping amplicon row"))
	assert.Contains(t, errOut, "level=WARN")
	assert.NotContains(t, out, "\uFFFD")
}

// Many records, several primers: parallel ordered output must equal the
// single-threaded run byte for byte, and unordered output must hold the
// same rows.
func TestParallelMatchesSerial(t *testing.T) {
	dir := t.TempDir()
	var fa strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&fa, ">r%03d\n%sACGT%sTTTTACGT%s\n", i,
			strings.Repeat("C", i%7), strings.Repeat("G", 4+i%5), strings.Repeat("C", i%3))
	}
	faPath := write(t, dir, "many.fa", fa.String())
	pr := write(t, dir, "p.tsv", "a\tACGT\tACGT\t8\t12\nb\tGGGG\tAAAA\t0\t20\n")

	code, serial, errOut := run(t, "-f", faPath, "-p", pr, "-t", "1", "--ordered")
	require.Equal(t, app.ExitOK, code, errOut)
	code, ordered, errOut := run(t, "-f", faPath, "-p", pr, "-t", "8", "--ordered")
	require.Equal(t, app.ExitOK, code, errOut)
	code, unordered, errOut := run(t, "-f", faPath, "-p", pr, "-t", "8")
	require.Equal(t, app.ExitOK, code, errOut)

	assert.Equal(t, serial, ordered)
	assert.Equal(t, sortedLines(serial), sortedLines(unordered))
	assert.Greater(t, strings.Count(serial, "\n"), 200)
}

func sortedLines(s string) []string {
	l := strings.Split(strings.TrimSpace(s), "\n")
	sort.Strings(l)
	return l
}

func TestGzipInputBGZFOutput(t *testing.T) {
	dir := t.TempDir()
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(">seq1\nacgtggggttttacgt\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	fa := write(t, dir, "in.fa.gz", gz.String())
	pr := write(t, dir, "p.tsv", "primer1\tACGT\tACGT\t8\t8\n")
	outPath := filepath.Join(dir, "out.tsv.gz")

	code, stdout, errOut := run(t, "-f", fa, "-p", pr, "-o", outPath)
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Empty(t, stdout)

	fh, err := os.Open(outPath)
	require.NoError(t, err)
	defer fh.Close()
	zr, err := gzip.NewReader(fh)
	require.NoError(t, err)
	var got bytes.Buffer
	_, err = got.ReadFrom(zr)
	require.NoError(t, err)
	assert.Equal(t, output.TSVHeader+"\nseq1\tprimer1\t4\t12\t8\t16\tGGGGTTTT\n", got.String())
}

func TestJSONL(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGTGGGGTTTTACGT\n")
	pr := write(t, dir, "p.tsv", "primer1\tACGT\tACGT\t8\t8\n")

	code, out, errOut := run(t, "-f", fa, "-p", pr, "--format", "jsonl")
	require.Equal(t, app.ExitOK, code, errOut)
	var got api.AmpliconV1
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	assert.Equal(t, api.AmpliconV1{
		SequenceID: "seq1", PrimerName: "primer1",
		Start: 4, End: 12, InsertLength: 8, ActualLength: 16, Amplicon: "GGGGTTTT",
	}, got)
}

func TestMissingInputsExitUsage(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGT\n")
	pr := write(t, dir, "p.tsv", "primer1\tACGT\tACGT\t8\t8\n")

	code, out, _ := run(t, "-f", filepath.Join(dir, "missing.fa"), "-p", pr)
	assert.Equal(t, app.ExitUsage, code)
	assert.Empty(t, out)

	code, out, _ = run(t, "-f", fa, "-p", filepath.Join(dir, "missing.tsv"))
	assert.Equal(t, app.ExitUsage, code)
	assert.Empty(t, out)

	code, _, _ = run(t, "-f", fa, "-p", write(t, dir, "bad.tsv", "only\tthree\tfields\n"))
	assert.Equal(t, app.ExitUsage, code)
}

func TestEnvAndConfigFile(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, dir, "in.fa", ">seq1\nACGTGGGGTTTTACGT\n")
	pr := write(t, dir, "p.tsv", "primer1\tACGT\tACGT\t8\t8\n")
	cfg := write(t, dir, "amplicon.yaml", "primers: "+pr+"\nformat: fasta\n")
	t.Setenv("AMPLICON_FASTA", fa)

	code, out, errOut := run(t, "--config", cfg)
	require.Equal(t, app.ExitOK, code, errOut)
	assert.Equal(t, ">seq1|primer1|4-12 insert=8 actual=16\nGGGGTTTT\n", out)
}

func TestCancelledRunExits130(t *testing.T) {
	dir := t.TempDir()
	seq := strings.Repeat("ACGT", 1<<14)
	fa := write(t, dir, "big.fa", ">chr1\n"+seq+"\n")
	pr := write(t, dir, "p.tsv", "p\tACGTACGT\tACGTACGT\t0\t64\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := cli.Execute(ctx, []string{"-f", fa, "-p", pr}, &out, &errBuf)
	assert.Equal(t, app.ExitCancelled, code)
}
