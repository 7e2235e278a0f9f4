package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reporting "creator-finance/internal/reporting/domain"
	"creator-finance/internal/reporting/interfaces"
)

func sampleSummary() *reporting.EarningsSummary {
	period, _ := reporting.ResolvePeriod(reporting.PeriodYearly, 2025, 0, time.UTC)
	return reporting.BuildEarningsSummary("inf-1", 2025, 0, period, "USD", nil, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
}

func TestWriteReportJSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, interfaces.NewRenderer(interfaces.DefaultRenderOptions()), sampleSummary(), "inf-1", ""))
	assert.Contains(t, buf.String(), "inf-1")
}

func TestWriteReportFiles(t *testing.T) {
	renderer := interfaces.NewRenderer(interfaces.DefaultRenderOptions())
	dir := t.TempDir()
	prefixes := map[string]string{
		"earnings.pdf":  "%PDF",
		"earnings.xlsx": "PK",
		"earnings.json": "{",
	}
	for name, prefix := range prefixes {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			var buf bytes.Buffer
			require.NoError(t, writeReport(&buf, renderer, sampleSummary(), "inf-1", out))
			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte(prefix)))
			assert.Contains(t, buf.String(), "wrote")
		})
	}
}

func TestWriteReportUnsupportedExtension(t *testing.T) {
	var buf bytes.Buffer
	err := writeReport(&buf, interfaces.NewRenderer(interfaces.DefaultRenderOptions()), sampleSummary(), "inf-1", filepath.Join(t.TempDir(), "earnings.csv"))
	require.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "statement", "campaign", "platform", "earnings"}, names)
}
