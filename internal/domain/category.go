package domain

import (
	"path/filepath"
	"strings"
)

// Category is the coarse classification tag that decides which viewer
// adapter, if any, handles a document.
type Category string

const (
	CategoryPDF        Category = "pdf"
	CategoryOffice     Category = "office"
	CategoryOpenOffice Category = "openoffice"
	CategoryGraphics   Category = "graphics"
	CategoryPostScript Category = "postscript"
	CategoryWeb        Category = "web"
	CategoryText       Category = "text"
	CategoryMultimedia Category = "multimedia"
	Category3D         Category = "3d"
	CategoryForms      Category = "forms"
	CategoryUnknown    Category = "unknown"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SupportedExtensions is the upload allow-list. Extensions with no entry in
// ExtensionMIMETypes are still accepted; they classify as "unknown" and get
// the "preview unavailable" affordance instead of a viewer.
var SupportedExtensions = []string{
	".pdf",
	".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".odt", ".odp", ".ods", ".odg", ".odf", ".sxw", ".sxi", ".sxc", ".sxd", ".stw",
	".psd", ".ai", ".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff",
	".ps", ".eps",
	".htm", ".html",
	".txt", ".rtf",
	".mp4", ".mov", ".mp3", ".wav", ".swf",
	".u3d", ".prc",
	".fdf", ".xfdf",
	".xps", ".xml",
}

// ExtensionMIMETypes maps a lower-case extension to its canonical MIME type.
var ExtensionMIMETypes = map[string]string{
	".pdf":  MIMEPDF,
	".doc":  "application/msword",
	".docx": MIMEDocx,
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odg":  "application/vnd.oasis.opendocument.graphics",
	".odf":  "application/vnd.oasis.opendocument.formula",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".psd":  "image/vnd.adobe.photoshop",
	".ai":   "application/postscript",
	".ps":   "application/postscript",
	".eps":  "application/postscript",
	".htm":  "text/html",
	".html": "text/html",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".swf":  "application/x-shockwave-flash",
	".u3d":  "model/u3d",
	".prc":  "model/prc",
	".fdf":  "application/vnd.fdf",
	".xfdf": "application/vnd.adobe.xfdf",
}

// MIMECategories maps a MIME type to its editor category.
var MIMECategories = map[string]Category{
	MIMEPDF:              CategoryPDF,
	"application/msword": CategoryOffice,
	MIMEDocx:             CategoryOffice,
	"application/vnd.ms-excel": CategoryOffice,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": CategoryOffice,
	"application/vnd.ms-powerpoint":                                     CategoryOffice,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": CategoryOffice,
	"application/vnd.oasis.opendocument.text":         CategoryOpenOffice,
	"application/vnd.oasis.opendocument.presentation": CategoryOpenOffice,
	"application/vnd.oasis.opendocument.spreadsheet":  CategoryOpenOffice,
	"application/vnd.oasis.opendocument.graphics":     CategoryOpenOffice,
	"application/vnd.oasis.opendocument.formula":      CategoryOpenOffice,
	"image/jpeg":                  CategoryGraphics,
	"image/png":                   CategoryGraphics,
	"image/gif":                   CategoryGraphics,
	"image/bmp":                   CategoryGraphics,
	"image/tiff":                  CategoryGraphics,
	"image/vnd.adobe.photoshop":   CategoryGraphics,
	"application/postscript":      CategoryPostScript,
	"text/html":                   CategoryWeb,
	"text/plain":                  CategoryText,
	"application/rtf":             CategoryText,
	"video/mp4":                   CategoryMultimedia,
	"video/quicktime":             CategoryMultimedia,
	"audio/mpeg":                  CategoryMultimedia,
	"audio/wav":                   CategoryMultimedia,
	"application/x-shockwave-flash": CategoryMultimedia,
	"model/u3d":                   Category3D,
	"model/prc":                   Category3D,
	"application/vnd.fdf":         CategoryForms,
	"application/vnd.adobe.xfdf":  CategoryForms,
}

// textMIMETypes are read and held as text rather than binary.
var textMIMETypes = map[string]bool{
	"text/plain":      true,
	"text/html":       true,
	"application/rtf": true,
}

// IsSupported reports whether a file passes the upload allow-list, checking
// the declared MIME type first and the filename extension second.
func IsSupported(filename, declaredMIME string) bool {
	if declaredMIME != "" {
		if _, ok := MIMECategories[declaredMIME]; ok {
			return true
		}
	}
	name := strings.ToLower(filename)
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Classify resolves a category and effective MIME type for a file.
// Resolution order is fixed: declared MIME type first, extension second,
// "unknown" last. Content sniffing, when available, is layered on by the
// caller before falling through to unknown.
func Classify(filename, declaredMIME string) (Category, string) {
	if declaredMIME != "" {
		if cat, ok := MIMECategories[declaredMIME]; ok {
			return cat, declaredMIME
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := ExtensionMIMETypes[ext]; ok {
		if cat, ok := MIMECategories[mime]; ok {
			return cat, mime
		}
	}

	return CategoryUnknown, declaredMIME
}

// IsTextMIME reports whether content with this MIME type is held as text.
func IsTextMIME(mime string) bool {
	return textMIMETypes[mime]
}

// IsRenderable reports whether a viewer adapter exists for this MIME type.
// Currently: PDF and DOCX.
func IsRenderable(mime string) bool {
	return mime == MIMEPDF || mime == MIMEDocx
}
