// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to DefaultLocale and then to
// the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// GetLocale returns the first supported language of the Accept-Language header.
// Quality values are ignored; the header order is taken as the preference order.
func GetLocale(c *gin.Context) string {
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if _, ok := defaultMessages[lang]; ok {
			return lang
		}
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:     "Invalid request",
		ErrKeyInvalidRequestBody: "Invalid request body",
		ErrKeyInternalError:      "An unexpected error occurred",
		ErrKeyUnauthorized:       "Unauthorized",
		ErrKeyAPIKeyRequired:     "API key is required",
		ErrKeyInvalidAPIKey:      "Invalid API key",
		ErrKeyForbidden:          "Forbidden",
		ErrKeyNotFound:           "Not found",
		ErrKeyRateLimitExceeded:  "Too many requests, please try again later",
		ErrKeyConflict:           "Conflict",
		ErrKeyInvalidToken:       "Invalid or expired token",
		ErrKeyTokenRequired:      "Authentication token is required",
		ErrKeyTimeout:            "The request took too long",
		ErrKeyUnavailable:        "Storage is unavailable, please try again later",

		ErrKeyValidation:      "Invalid bar group",
		ErrKeyInvalidUnit:     "Invalid numeric value",
		ErrKeyInvalidGeometry: "Bar geometry does not produce a positive cutting length",
		ErrKeyUnknownCode:     "Unsupported design code",
		ErrKeyTooManyItems:    "Too many bar groups in one request",

		ErrKeyFileRequired:      "A CSV or XLSX file is required",
		ErrKeyUnsupportedFormat: "Unsupported file format",
		ErrKeyImportRow:         "The uploaded sheet could not be read",
		ErrKeyFileTooLarge:      "The uploaded file is too large",
		ErrKeyInvalidRateCard:   "Invalid rate card",
		ErrKeyScheduleNotFound:  "Schedule not found",
	},
	"pt": {
		ErrKeyInvalidRequest:     "Requisição inválida",
		ErrKeyInvalidRequestBody: "Corpo da requisição inválido",
		ErrKeyInternalError:      "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:       "Não autorizado",
		ErrKeyAPIKeyRequired:     "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:      "Chave de API inválida",
		ErrKeyForbidden:          "Proibido",
		ErrKeyNotFound:           "Não encontrado",
		ErrKeyRateLimitExceeded:  "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:           "Conflito",
		ErrKeyInvalidToken:       "Token inválido ou expirado",
		ErrKeyTokenRequired:      "Token de autenticação é obrigatório",
		ErrKeyTimeout:            "A requisição demorou demais",
		ErrKeyUnavailable:        "Armazenamento indisponível, tente novamente mais tarde",

		ErrKeyValidation:      "Grupo de barras inválido",
		ErrKeyInvalidUnit:     "Valor numérico inválido",
		ErrKeyInvalidGeometry: "A geometria da barra não gera um comprimento de corte positivo",
		ErrKeyUnknownCode:     "Norma de projeto não suportada",
		ErrKeyTooManyItems:    "Grupos de barras demais em uma requisição",

		ErrKeyFileRequired:      "Um arquivo CSV ou XLSX é obrigatório",
		ErrKeyUnsupportedFormat: "Formato de arquivo não suportado",
		ErrKeyImportRow:         "A planilha enviada não pôde ser lida",
		ErrKeyFileTooLarge:      "O arquivo enviado é grande demais",
		ErrKeyInvalidRateCard:   "Tabela de preços inválida",
		ErrKeyScheduleNotFound:  "Tabela de armação não encontrada",
	},
	"nl": {
		ErrKeyInvalidRequest:     "Ongeldig verzoek",
		ErrKeyInvalidRequestBody: "Ongeldige aanvraag body",
		ErrKeyInternalError:      "Er is een onverwachte fout opgetreden",
		ErrKeyUnauthorized:       "Niet geautoriseerd",
		ErrKeyAPIKeyRequired:     "API-sleutel is vereist",
		ErrKeyInvalidAPIKey:      "Ongeldige API-sleutel",
		ErrKeyForbidden:          "Verboden",
		ErrKeyNotFound:           "Niet gevonden",
		ErrKeyRateLimitExceeded:  "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:           "Conflict",
		ErrKeyInvalidToken:       "Ongeldig of verlopen token",
		ErrKeyTokenRequired:      "Authenticatietoken is vereist",
		ErrKeyTimeout:            "Het verzoek duurde te lang",
		ErrKeyUnavailable:        "Opslag is niet beschikbaar, probeer het later opnieuw",

		ErrKeyValidation:      "Ongeldige staafgroep",
		ErrKeyInvalidUnit:     "Ongeldige numerieke waarde",
		ErrKeyInvalidGeometry: "De staafgeometrie levert geen positieve kniplengte op",
		ErrKeyUnknownCode:     "Niet-ondersteunde ontwerpnorm",
		ErrKeyTooManyItems:    "Te veel staafgroepen in één verzoek",

		ErrKeyFileRequired:      "Een CSV- of XLSX-bestand is vereist",
		ErrKeyUnsupportedFormat: "Niet-ondersteund bestandsformaat",
		ErrKeyImportRow:         "Het geüploade werkblad kon niet worden gelezen",
		ErrKeyFileTooLarge:      "Het geüploade bestand is te groot",
		ErrKeyInvalidRateCard:   "Ongeldige prijslijst",
		ErrKeyScheduleNotFound:  "Buigstaat niet gevonden",
	},
}
