package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"yashubustudio/reconciler/reconciler"
)

var inputExtensions = []string{".xlsx", ".xls", ".csv", ".tsv"}

type uiState struct {
	service    *reconciler.Service
	session    *Session
	logger     zerolog.Logger
	configPath string

	w         fyne.Window
	body      *fyne.Container
	stepBind  binding.String
	logBind   binding.String
	statsBind binding.String

	uploadView     fyne.CanvasObject
	readyView      fyne.CanvasObject
	processingView fyne.CanvasObject
	resultsView    fyne.CanvasObject

	refStatus   *widget.Label
	curStatus   *widget.Label
	readyInfo   *widget.Label
	readyError  *widget.Label
	dictSummary *widget.Label

	cards     [3]*canvas.Text
	resTbl    *widget.Table
	columns   []string
	page      int
	pageSize  int
	pageLabel *widget.Label
	prevBtn   *widget.Button
	nextBtn   *widget.Button

	processBtn *widget.Button
}

func buildUI(a fyne.App, svc *reconciler.Service, configPath string, logger zerolog.Logger, logBind binding.String) *uiState {
	u := &uiState{
		service:    svc,
		session:    NewSession(),
		logger:     logger,
		configPath: configPath,
		logBind:    logBind,
		pageSize:   defaultPageSize,
	}
	u.w = a.NewWindow("Processador de Planilhas Excel")
	u.stepBind = binding.NewString()
	u.statsBind = binding.NewString()

	u.uploadView = u.makeUploadView()
	u.readyView = u.makeReadyView()
	u.processingView = u.makeProcessingView()
	u.resultsView = u.makeResultsView()
	u.body = container.NewStack(u.uploadView)

	title := widget.NewLabelWithStyle("Processador de Planilhas Excel", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	step := widget.NewLabelWithData(u.stepBind)
	header := container.NewVBox(container.NewHBox(widget.NewIcon(theme.FileIcon()), title), step, widget.NewSeparator())

	logEntry := widget.NewEntryWithData(u.logBind)
	logEntry.MultiLine = true
	logEntry.Wrapping = fyne.TextWrapWord
	logEntry.SetPlaceHolder("Log de processamento")
	logEntry.Disable()
	logPanel := container.NewBorder(
		widget.NewLabelWithStyle("Log", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil, logEntry,
	)

	split := container.NewVSplit(u.body, logPanel)
	split.Offset = 0.8
	u.w.SetContent(container.NewBorder(header, nil, nil, nil, split))
	u.w.Resize(fyne.NewSize(1180, 760))
	u.render()
	return u
}

func (u *uiState) makeUploadView() fyne.CanvasObject {
	u.refStatus = widget.NewLabel("Nenhum arquivo carregado")
	u.curStatus = widget.NewLabel("Nenhum arquivo carregado")
	refBtn := widget.NewButtonWithIcon("Selecionar planilha antiga", theme.FolderOpenIcon(), func() {
		u.onLoad(reconciler.SideReference)
	})
	curBtn := widget.NewButtonWithIcon("Selecionar planilha atual", theme.FolderOpenIcon(), func() {
		u.onLoad(reconciler.SideCurrent)
	})
	hint := "Suporte para arquivos .xlsx, .csv e .tsv"
	ref := widget.NewCard("Planilha Antiga (Referência)", hint, container.NewVBox(refBtn, u.refStatus))
	cur := widget.NewCard("Planilha Atual (Para Processar)", hint, container.NewVBox(curBtn, u.curStatus))
	return container.NewVBox(container.NewGridWithColumns(2, ref, cur))
}

func (u *uiState) makeReadyView() fyne.CanvasObject {
	u.readyInfo = widget.NewLabel("")
	u.readyInfo.Wrapping = fyne.TextWrapWord
	u.readyError = widget.NewLabel("")
	u.readyError.Importance = widget.DangerImportance
	u.readyError.Wrapping = fyne.TextWrapWord
	u.dictSummary = widget.NewLabel("")

	steps := widget.NewLabel(
		"- Remover números de processos duplicados\n" +
			"- Comparar com a planilha antiga e adicionar a coluna \"Pendente\"\n" +
			"- Herdar o \"Responsável\" da planilha antiga\n" +
			"- Classificar pelo texto os registros sem responsável",
	)
	u.processBtn = widget.NewButtonWithIcon("Processar Planilhas", theme.MediaPlayIcon(), func() { u.onProcess() })
	u.processBtn.Importance = widget.HighImportance
	resetBtn := widget.NewButtonWithIcon("Recomeçar", theme.DeleteIcon(), func() { u.onReset() })
	reloadBtn := widget.NewButtonWithIcon("Recarregar dicionário", theme.ViewRefreshIcon(), func() { u.onReloadDictionary() })
	settingsBtn := widget.NewButtonWithIcon("Configurações", theme.SettingsIcon(), func() { u.onSettings() })
	changeRef := widget.NewButtonWithIcon("Trocar planilha antiga", theme.FolderOpenIcon(), func() {
		u.onLoad(reconciler.SideReference)
	})
	changeCur := widget.NewButtonWithIcon("Trocar planilha atual", theme.FolderOpenIcon(), func() {
		u.onLoad(reconciler.SideCurrent)
	})

	card := widget.NewCard("Pronto para Processar!", "Ambas as planilhas foram carregadas. O sistema irá:", container.NewVBox(
		steps,
		u.readyInfo,
		u.dictSummary,
		u.readyError,
		container.NewHBox(u.processBtn, resetBtn),
		container.NewHBox(changeRef, changeCur, reloadBtn, settingsBtn),
	))
	return container.NewVBox(card)
}

func (u *uiState) makeProcessingView() fyne.CanvasObject {
	bar := widget.NewProgressBarInfinite()
	title := widget.NewLabelWithStyle("Processando...", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	hint := widget.NewLabelWithStyle("Aguarde enquanto processamos suas planilhas", fyne.TextAlignCenter, fyne.TextStyle{})
	return container.NewCenter(container.NewVBox(title, bar, hint))
}

func (u *uiState) makeResultsView() fyne.CanvasObject {
	cardDefs := []struct {
		label string
		color fyne.ThemeColorName
	}{
		{"Duplicatas Removidas", theme.ColorNameError},
		{"Registros Processados", theme.ColorNamePrimary},
		{"Marcados como Pendentes", theme.ColorNameWarning},
	}
	cardObjs := make([]fyne.CanvasObject, 0, len(cardDefs))
	for i, def := range cardDefs {
		value := canvas.NewText("0", theme.Color(def.color))
		value.TextSize = 32
		value.TextStyle = fyne.TextStyle{Bold: true}
		value.Alignment = fyne.TextAlignCenter
		card := widget.NewCard("", "", container.NewVBox(
			value,
			widget.NewLabelWithStyle(def.label, fyne.TextAlignCenter, fyne.TextStyle{}),
		))
		u.cards[i] = value
		cardObjs = append(cardObjs, card)
	}
	statsLine := widget.NewLabelWithData(u.statsBind)

	u.resTbl = widget.NewTable(
		func() (int, int) {
			cols := len(u.columns)
			if cols == 0 {
				cols = 1
			}
			start, end := u.pageRange()
			return end - start + 1, cols
		},
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Col >= len(u.columns) {
				lbl.SetText("")
				return
			}
			col := u.columns[id.Col]
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.Importance = widget.MediumImportance
				lbl.SetText(col)
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			rec := u.recordAt(id.Row - 1)
			if rec == nil {
				lbl.SetText("")
				return
			}
			lbl.Importance = cellImportance(rec, col)
			lbl.SetText(reconciler.DisplayCell(rec, col, u.service.Config().TextColumn))
		},
	)

	downloadBtn := widget.NewButtonWithIcon("Baixar Excel", theme.DocumentSaveIcon(), func() { u.onExport() })
	downloadBtn.Importance = widget.HighImportance
	newBtn := widget.NewButtonWithIcon("Nova Análise", theme.DeleteIcon(), func() { u.onReset() })

	sizes := make([]string, len(pageSizeOptions))
	for i, n := range pageSizeOptions {
		sizes[i] = strconv.Itoa(n)
	}
	sizeSel := widget.NewSelect(sizes, func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			u.pageSize = n
			u.page = 0
			u.refreshTable()
		}
	})
	u.pageLabel = widget.NewLabel("")
	u.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if u.page > 0 {
			u.page--
			u.refreshTable()
		}
	})
	u.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		u.page++
		u.refreshTable()
	})
	sizeSel.SetSelected(strconv.Itoa(defaultPageSize))

	toolbar := container.NewHBox(
		widget.NewLabelWithStyle("Dados Processados", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		downloadBtn, newBtn,
	)
	pager := container.NewHBox(u.prevBtn, u.pageLabel, u.nextBtn, widget.NewLabel("por página:"), sizeSel)
	top := container.NewVBox(container.NewGridWithColumns(3, cardObjs...), statsLine, toolbar)
	return container.NewBorder(top, pager, nil, nil, u.resTbl)
}

func cellImportance(rec *reconciler.Record, col string) widget.Importance {
	switch col {
	case reconciler.PendingColumn:
		if rec.String(col) == reconciler.PendingYes {
			return widget.WarningImportance
		}
		return widget.SuccessImportance
	case reconciler.ResponsibleColumn:
		return widget.LowImportance
	}
	return widget.MediumImportance
}

func columnWidth(col, textColumn string) float32 {
	switch col {
	case reconciler.PendingColumn:
		return 120
	case reconciler.ResponsibleColumn:
		return 150
	case textColumn:
		return 420
	}
	return 200
}

// render shows the view for the current step. Must run on the UI goroutine.
func (u *uiState) render() {
	st := u.session.State()
	_ = u.stepBind.Set(fmt.Sprintf("Etapa: %s", st.Step))

	u.refStatus.SetText(uploadStatus(st.ReferenceName, st.ReferenceRows))
	u.curStatus.SetText(uploadStatus(st.CurrentName, st.CurrentRows))
	u.readyInfo.SetText(fmt.Sprintf("Antiga: %s (%d registros)\nAtual: %s (%d registros)",
		st.ReferenceName, st.ReferenceRows, st.CurrentName, st.CurrentRows))
	if st.Err != nil {
		u.readyError.SetText(reconciler.UserMessage(st.Err))
		u.readyError.Show()
	} else {
		u.readyError.Hide()
	}
	u.updateDictionarySummary()

	var view fyne.CanvasObject
	switch st.Step {
	case StepReady:
		view = u.readyView
	case StepProcessing:
		view = u.processingView
	case StepResults:
		view = u.resultsView
	default:
		view = u.uploadView
	}
	u.body.Objects = []fyne.CanvasObject{view}
	u.body.Refresh()
}

func uploadStatus(name string, rows int) string {
	if name == "" {
		return "Nenhum arquivo carregado"
	}
	if rows == 0 {
		return fmt.Sprintf("Arquivo carregado: %s (planilha vazia)", name)
	}
	return fmt.Sprintf("Arquivo carregado: %s (%d registros)", name, rows)
}

func (u *uiState) updateDictionarySummary() {
	cfg := u.service.Config()
	dict := u.service.Dictionary()
	u.dictSummary.SetText(fmt.Sprintf("Coluna de texto: %s / Dicionário: %s (%d responsáveis, %d palavras-chave)",
		cfg.TextColumn, cfg.DictionaryPath, dict.Len(), dict.KeywordCount()))
}

func (u *uiState) onLoad(side string) {
	label := "antiga"
	if side == reconciler.SideCurrent {
		label = "atual"
	}
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if rc == nil {
			return
		}
		name := rc.URI().Name()
		go func() {
			defer rc.Close()
			ds, err := reconciler.ReadDataset(name, rc)
			if err != nil {
				u.logger.Error().Err(err).Str("side", side).Str("file", name).Msg("read spreadsheet failed")
				fyne.Do(func() {
					dialog.ShowError(fmt.Errorf("Erro ao ler a planilha %s: %w", label, err), u.w)
				})
				return
			}
			if _, err := u.session.Load(side, name, ds); err != nil {
				fyne.Do(func() { dialog.ShowError(err, u.w) })
				return
			}
			u.logger.Info().Str("side", side).Str("file", name).Int("rows", len(ds)).
				Msgf("Planilha %s carregada", label)
			fyne.Do(u.render)
		}()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter(inputExtensions))
	fd.Show()
}

func (u *uiState) onProcess() {
	u.processBtn.Disable()
	go func() {
		res, err := u.session.Process(ProcessorFunc(func(current, reference reconciler.Dataset) (*reconciler.Result, error) {
			fyne.Do(u.render)
			return u.service.Process(current, reference)
		}))
		fyne.Do(func() {
			u.processBtn.Enable()
			if err != nil {
				dialog.ShowError(errors.New(reconciler.UserMessage(err)), u.w)
				u.render()
				return
			}
			u.showResult(res)
			u.render()
			dialog.ShowInformation("Sucesso", "Processamento concluído com sucesso!", u.w)
		})
	}()
}

func (u *uiState) showResult(res *reconciler.Result) {
	s := res.Stats
	for i, v := range []int{s.DuplicatesRemoved, s.Processed, s.Pending} {
		u.cards[i].Text = strconv.Itoa(v)
		u.cards[i].Refresh()
	}
	_ = u.statsBind.Set(fmt.Sprintf("Coluna-chave: %s / Responsável herdado: %d / Classificados: %d / Não definido: %d",
		res.KeyColumn, s.Carried, s.Classified, s.Unassigned))

	textColumn := u.service.Config().TextColumn
	u.columns = res.Records.Columns()
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, columnWidth(col, textColumn))
	}
	u.page = 0
	u.refreshTable()
}

func (u *uiState) result() *reconciler.Result {
	return u.session.State().Result
}

func (u *uiState) pageRange() (int, int) {
	res := u.result()
	if res == nil {
		return 0, 0
	}
	return pageBounds(len(res.Records), u.page, u.pageSize)
}

func (u *uiState) recordAt(row int) *reconciler.Record {
	res := u.result()
	if res == nil {
		return nil
	}
	start, end := pageBounds(len(res.Records), u.page, u.pageSize)
	if start+row >= end {
		return nil
	}
	return res.Records[start+row]
}

func (u *uiState) refreshTable() {
	total := 0
	if res := u.result(); res != nil {
		total = len(res.Records)
	}
	pages := pageCount(total, u.pageSize)
	if u.page >= pages {
		u.page = pages - 1
	}
	if u.page <= 0 {
		u.page = 0
		u.prevBtn.Disable()
	} else {
		u.prevBtn.Enable()
	}
	if u.page >= pages-1 {
		u.nextBtn.Disable()
	} else {
		u.nextBtn.Enable()
	}
	u.pageLabel.SetText(fmt.Sprintf("Página %d de %d / Total: %d registros", u.page+1, pages, total))
	u.resTbl.ScrollToTop()
	u.resTbl.Refresh()
}

func (u *uiState) onExport() {
	res := u.result()
	if res == nil || len(res.Records) == 0 {
		dialog.ShowInformation("Aviso", "Nenhum dado processado para download", u.w)
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if uc == nil {
			return
		}
		defer uc.Close()
		name := uc.URI().Name()
		format, err := reconciler.FormatFromPath(name)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		if err := u.service.ExportTo(uc, name, format, res); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		dialog.ShowInformation("Sucesso", "Arquivo baixado com sucesso!", u.w)
	}, u.w)
	fd.SetFileName(reconciler.OutputFileName(time.Now(), reconciler.FormatXLSX))
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".xlsx", ".csv", ".tsv"}))
	fd.Show()
}

func (u *uiState) onReloadDictionary() {
	if err := u.service.ReloadDictionary(); err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	u.updateDictionarySummary()
}

func (u *uiState) onSettings() {
	cfg := u.service.Config()
	textEntry := widget.NewEntry()
	textEntry.SetText(cfg.TextColumn)
	dictEntry := widget.NewEntry()
	dictEntry.SetText(cfg.DictionaryPath)
	items := []*widget.FormItem{
		widget.NewFormItem("Coluna de texto", textEntry),
		widget.NewFormItem("Dicionário", dictEntry),
	}
	dialog.ShowForm("Configurações", "Salvar", "Cancelar", items, func(ok bool) {
		if !ok {
			return
		}
		stored, err := applySettings(u.service, u.configPath, textEntry.Text, dictEntry.Text)
		if err != nil {
			u.logger.Error().Err(err).Msg("settings rejected")
			dialog.ShowError(err, u.w)
			return
		}
		u.logger.Info().Str("text_column", stored.TextColumn).Str("dictionary", stored.DictionaryPath).Msg("settings saved")
		u.updateDictionarySummary()
	}, u.w)
}

func (u *uiState) onReset() {
	u.session.Reset()
	u.columns = nil
	u.page = 0
	for i := range u.cards {
		u.cards[i].Text = "0"
		u.cards[i].Refresh()
	}
	_ = u.statsBind.Set("")
	u.logger.Info().Msg("Nova análise iniciada")
	u.render()
}
