package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"pdfmerge-cli/internal/model"
	"pdfmerge-cli/internal/pdf"
	"pdfmerge-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

const successStatusTTL = 5 * time.Second

// startMerge snapshots the current order and kicks off validation of the
// first input. Each validated input schedules the next one so the progress
// bar can render between steps.
func (m *appModel) startMerge() tea.Cmd {
	if m.merging {
		return nil
	}
	if m.list.Len() < pdf.MinMergeFiles {
		m.setStatus(statusError, msgTooFewToMerge)
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.merging = true
	m.mergeRun++
	m.mergePaths = m.list.Paths()
	m.mergeOut = pdf.OutputName(m.cfg.OutputDir, m.cfg.OutputPattern, time.Now())
	m.mergeStep = 0
	m.mergeCtx = ctx
	m.mergeCancel = cancel
	m.setStatus(statusInfo, fmt.Sprintf("Merging %d files...", len(m.mergePaths)))
	m.log.Info().Int("files", len(m.mergePaths)).Str("out", m.mergeOut).Msg("tui: merge start")
	return validateStepCmd(ctx, m.merger, m.mergeRun, m.mergePaths, 0)
}

func validateStepCmd(ctx context.Context, mg *pdf.Merger, run int, paths []string, step int) tea.Cmd {
	return func() tea.Msg {
		err := mg.Validate(ctx, paths[step])
		return mergeStepMsg{run: run, step: step, err: err}
	}
}

func writeCmd(ctx context.Context, mg *pdf.Merger, hist *store.History, run int, paths []string, out string) tea.Cmd {
	return func() tea.Msg {
		res, err := mg.Write(ctx, paths, out)
		if err != nil {
			return mergeDoneMsg{run: run, err: err}
		}
		done := mergeDoneMsg{run: run, res: res}
		if hist != nil {
			// History is best-effort; the merged file already exists.
			_, done.histErr = hist.Record(context.Background(), model.MergeRecord{
				OutputPath: res.OutputPath,
				Inputs:     paths,
				Pages:      res.Pages,
				Bytes:      res.Bytes,
			})
		}
		return done
	}
}

func (m *appModel) mergeFraction() float64 {
	total := len(m.mergePaths) + 1
	if total <= 1 {
		return 0
	}
	return float64(m.mergeStep) / float64(total)
}

func (m *appModel) handleMergeStep(msg mergeStepMsg) tea.Cmd {
	if !m.merging || msg.run != m.mergeRun {
		return nil
	}
	if msg.err != nil {
		m.finishMerge()
		m.setStatus(statusError, "Error: "+msg.err.Error())
		m.log.Warn().Err(msg.err).Msg("tui: merge validate")
		return nil
	}
	m.mergeStep = msg.step + 1
	ctx := m.mergeCtx
	if m.mergeStep < len(m.mergePaths) {
		return validateStepCmd(ctx, m.merger, m.mergeRun, m.mergePaths, m.mergeStep)
	}
	return writeCmd(ctx, m.merger, m.history, m.mergeRun, m.mergePaths, m.mergeOut)
}

func (m *appModel) handleMergeDone(msg mergeDoneMsg) tea.Cmd {
	if !m.merging || msg.run != m.mergeRun {
		return nil
	}
	m.finishMerge()
	if msg.err != nil {
		m.setStatus(statusError, "Error: "+msg.err.Error())
		m.log.Warn().Err(msg.err).Msg("tui: merge")
		return nil
	}
	if msg.histErr != nil {
		m.log.Warn().Err(msg.histErr).Str("out", msg.res.OutputPath).Msg("tui: record merge")
	}
	m.setStatus(statusSuccess, fmt.Sprintf("Success! Merged %d PDF files into %s (%s, %d pages).",
		msg.res.Inputs, filepath.Base(msg.res.OutputPath), pdf.FormatSize(msg.res.Bytes), msg.res.Pages))
	seq := m.statusSeq
	return tea.Tick(successStatusTTL, func(time.Time) tea.Msg { return statusClearMsg{seq: seq} })
}

func (m *appModel) cancelMerge() {
	if !m.merging {
		return
	}
	m.finishMerge()
	m.setStatus(statusError, "Merge cancelled")
}

func (m *appModel) finishMerge() {
	if m.mergeCancel != nil {
		m.mergeCancel()
	}
	m.merging = false
	m.mergeCtx = nil
	m.mergeCancel = nil
	m.mergeStep = 0
}
