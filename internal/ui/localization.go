package ui

import (
	"sync"

	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle            = "app_title"
	KeyFile                = "file"
	KeyLanguage            = "language"
	KeyTheme               = "theme"
	KeySettings            = "settings"
	KeyAddFiles            = "add_files"
	KeyAddFolder           = "add_folder"
	KeyChooseOutputDir     = "choose_output_dir"
	KeyOutputDirNotSet     = "output_dir_not_set"
	KeyOutputFormat        = "output_format"
	KeyConvert             = "convert"
	KeyStop                = "stop"
	KeyClearList           = "clear_list"
	KeyRemove              = "remove"
	KeyStatusPending       = "status_pending"
	KeyStatusConverted     = "status_converted"
	KeyStatusFailed        = "status_failed"
	KeyWarning             = "warning"
	KeyNoFilesSelected     = "no_files_selected"
	KeyNoOutputDirSelected = "no_output_dir_selected"
	KeyOutputDirNotWrite   = "output_dir_not_writable"
	KeyConverting          = "converting"
	KeyStopping            = "stopping"
	KeyBatchRunning        = "batch_running"
	KeyBusyIntake          = "busy_intake"
	KeyAllConverted        = "all_converted"
	KeyOutputReplaced      = "output_replaced"
	KeyConvertedSummary    = "converted_summary"
	KeyFailedSummary       = "failed_summary"
	KeyBatchCancelled      = "batch_cancelled"
	KeyConversionComplete  = "conversion_complete"
	KeyOpenOutputFolder    = "open_output_folder"
	KeyClose               = "close"
	KeyFilesAdded          = "files_added"
	KeyFilesRejected       = "files_rejected"
	KeyNoFilesInFolder     = "no_files_in_folder"
	KeyDropHint            = "drop_hint"
	KeyFFmpegPath          = "ffmpeg_path"
	KeySave                = "save"
	KeyCancel              = "cancel"
	KeyBrowse              = "browse"
	KeySettingsApplied     = "settings_applied"
	KeyThemeDark           = "theme_dark"
	KeyThemeLight          = "theme_light"
	KeyThemeSystem         = "theme_system"
	KeyLanguageSystem      = "language_system"
	KeyErrorOpeningFolder  = "error_opening_folder"
)

// Language codes with translations, in menu order
var languageCodes = []string{"en", "ru", "pt"}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
})

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest
// translation to the OS locale.
func (l *Localization) SetLanguage(code string) {
	if code == "system" {
		code = systemLanguage()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if text, found := l.texts["en"][key]; found {
		return text
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// LanguageName returns the native name of a language code
func (l *Localization) LanguageName(code string) string {
	switch code {
	case "en":
		return "English"
	case "ru":
		return "Русский"
	case "pt":
		return "Português"
	}
	return code
}

func systemLanguage() string {
	return matchLanguage(string(lang.SystemLocale()))
}

// matchLanguage maps a BCP 47 locale such as "pt-BR" to a translation code
func matchLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return "en"
	}
	return languageCodes[index]
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:            "Audio Converter",
		KeyFile:                "File",
		KeyLanguage:            "Language",
		KeyTheme:               "Theme",
		KeySettings:            "Settings",
		KeyAddFiles:            "Add files",
		KeyAddFolder:           "Add folder",
		KeyChooseOutputDir:     "Output folder",
		KeyOutputDirNotSet:     "No output folder selected",
		KeyOutputFormat:        "Format",
		KeyConvert:             "Convert",
		KeyStop:                "Stop",
		KeyClearList:           "Clear list",
		KeyRemove:              "Remove",
		KeyStatusPending:       "Pending",
		KeyStatusConverted:     "Converted",
		KeyStatusFailed:        "Failed",
		KeyWarning:             "Warning",
		KeyNoFilesSelected:     "No files selected for conversion.",
		KeyNoOutputDirSelected: "No output directory selected.",
		KeyOutputDirNotWrite:   "The output folder is not writable",
		KeyConverting:          "Converting %d files to %s...",
		KeyStopping:            "Stopping after the current file...",
		KeyBatchRunning:        "A conversion is already running.",
		KeyBusyIntake:          "The file list cannot be changed while converting.",
		KeyAllConverted:        "All files converted successfully!",
		KeyOutputReplaced:      "Replaced the output of %s",
		KeyConvertedSummary:    "Converted %d of %d files to %s.",
		KeyFailedSummary:       "Failed:",
		KeyBatchCancelled:      "Stopped after %d of %d files.",
		KeyConversionComplete:  "Conversion complete",
		KeyOpenOutputFolder:    "Open output folder",
		KeyClose:               "Close",
		KeyFilesAdded:          "Added %d files",
		KeyFilesRejected:       "%d skipped (%d unsupported, %d already in the list)",
		KeyNoFilesInFolder:     "No supported audio files in this folder",
		KeyDropHint:            "Drop audio files here, paste paths or use Add files",
		KeyFFmpegPath:          "FFmpeg binary",
		KeySave:                "Save",
		KeyCancel:              "Cancel",
		KeyBrowse:              "Browse",
		KeySettingsApplied:     "Settings applied",
		KeyThemeDark:           "Dark",
		KeyThemeLight:          "Light",
		KeyThemeSystem:         "System",
		KeyLanguageSystem:      "System default",
		KeyErrorOpeningFolder:  "Error opening folder",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:            "Аудиоконвертер",
		KeyFile:                "Файл",
		KeyLanguage:            "Язык",
		KeyTheme:               "Тема",
		KeySettings:            "Настройки",
		KeyAddFiles:            "Добавить файлы",
		KeyAddFolder:           "Добавить папку",
		KeyChooseOutputDir:     "Папка вывода",
		KeyOutputDirNotSet:     "Папка вывода не выбрана",
		KeyOutputFormat:        "Формат",
		KeyConvert:             "Конвертировать",
		KeyStop:                "Стоп",
		KeyClearList:           "Очистить список",
		KeyRemove:              "Удалить",
		KeyStatusPending:       "Ожидает",
		KeyStatusConverted:     "Готово",
		KeyStatusFailed:        "Ошибка",
		KeyWarning:             "Предупреждение",
		KeyNoFilesSelected:     "Не выбраны файлы для конвертации.",
		KeyNoOutputDirSelected: "Не выбрана папка вывода.",
		KeyOutputDirNotWrite:   "Нет прав на запись в папку вывода",
		KeyConverting:          "Конвертация %d файлов в %s...",
		KeyStopping:            "Остановка после текущего файла...",
		KeyBatchRunning:        "Конвертация уже выполняется.",
		KeyBusyIntake:          "Во время конвертации список файлов изменить нельзя.",
		KeyAllConverted:        "Все файлы успешно сконвертированы!",
		KeyOutputReplaced:      "Заменён результат файла %s",
		KeyConvertedSummary:    "Сконвертировано %d из %d файлов в %s.",
		KeyFailedSummary:       "С ошибкой:",
		KeyBatchCancelled:      "Остановлено после %d из %d файлов.",
		KeyConversionComplete:  "Конвертация завершена",
		KeyOpenOutputFolder:    "Открыть папку вывода",
		KeyClose:               "Закрыть",
		KeyFilesAdded:          "Добавлено файлов: %d",
		KeyFilesRejected:       "Пропущено %d (не поддерживается: %d, уже в списке: %d)",
		KeyNoFilesInFolder:     "В папке нет поддерживаемых аудиофайлов",
		KeyDropHint:            "Перетащите аудиофайлы сюда, вставьте пути или нажмите «Добавить файлы»",
		KeyFFmpegPath:          "Путь к FFmpeg",
		KeySave:                "Сохранить",
		KeyCancel:              "Отмена",
		KeyBrowse:              "Обзор",
		KeySettingsApplied:     "Настройки применены",
		KeyThemeDark:           "Тёмная",
		KeyThemeLight:          "Светлая",
		KeyThemeSystem:         "Системная",
		KeyLanguageSystem:      "Системный",
		KeyErrorOpeningFolder:  "Ошибка открытия папки",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:            "Conversor de Áudio",
		KeyFile:                "Arquivo",
		KeyLanguage:            "Idioma",
		KeyTheme:               "Tema",
		KeySettings:            "Configurações",
		KeyAddFiles:            "Adicionar arquivos",
		KeyAddFolder:           "Adicionar pasta",
		KeyChooseOutputDir:     "Pasta de saída",
		KeyOutputDirNotSet:     "Nenhuma pasta de saída selecionada",
		KeyOutputFormat:        "Formato",
		KeyConvert:             "Converter",
		KeyStop:                "Parar",
		KeyClearList:           "Limpar lista",
		KeyRemove:              "Remover",
		KeyStatusPending:       "Pendente",
		KeyStatusConverted:     "Convertido",
		KeyStatusFailed:        "Falhou",
		KeyWarning:             "Aviso",
		KeyNoFilesSelected:     "Nenhum arquivo selecionado para conversão.",
		KeyNoOutputDirSelected: "Nenhum diretório de saída selecionado.",
		KeyOutputDirNotWrite:   "A pasta de saída não permite gravação",
		KeyConverting:          "Convertendo %d arquivos para %s...",
		KeyStopping:            "Parando após o arquivo atual...",
		KeyBatchRunning:        "Uma conversão já está em andamento.",
		KeyBusyIntake:          "A lista não pode ser alterada durante a conversão.",
		KeyAllConverted:        "Todos os arquivos foram convertidos com sucesso!",
		KeyOutputReplaced:      "Substituiu a saída de %s",
		KeyConvertedSummary:    "%d de %d arquivos convertidos para %s.",
		KeyFailedSummary:       "Falharam:",
		KeyBatchCancelled:      "Parado após %d de %d arquivos.",
		KeyConversionComplete:  "Conversão concluída",
		KeyOpenOutputFolder:    "Abrir pasta de saída",
		KeyClose:               "Fechar",
		KeyFilesAdded:          "%d arquivos adicionados",
		KeyFilesRejected:       "%d ignorados (%d não suportados, %d já na lista)",
		KeyNoFilesInFolder:     "Nenhum arquivo de áudio suportado nesta pasta",
		KeyDropHint:            "Arraste arquivos de áudio aqui, cole caminhos ou use Adicionar arquivos",
		KeyFFmpegPath:          "Binário do FFmpeg",
		KeySave:                "Salvar",
		KeyCancel:              "Cancelar",
		KeyBrowse:              "Navegar",
		KeySettingsApplied:     "Configurações aplicadas",
		KeyThemeDark:           "Escuro",
		KeyThemeLight:          "Claro",
		KeyThemeSystem:         "Sistema",
		KeyLanguageSystem:      "Padrão do sistema",
		KeyErrorOpeningFolder:  "Erro ao abrir pasta",
	}
}
