package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"log"
	"net/http"

	"scholarship-portal-api/models"
	"scholarship-portal-api/utils"
)

// portraitEMU is the rendered portrait edge length: 100px at 9525 EMU/px.
const portraitEMU = 952500

const contentTypesHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><w:body>`

const documentClose = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`

// DocumentService renders the downloadable .docx summary of one application.
type DocumentService struct {
	uploads UploadStore
}

// NewDocumentService builds a renderer reading portrait payloads from uploads.
func NewDocumentService(uploads UploadStore) *DocumentService {
	if uploads == nil {
		uploads = NewLocalUploadStore()
	}
	return &DocumentService{uploads: uploads}
}

// BuildSubmissionDocument produces a self-contained .docx with the portal
// title, the tracking ID, the portrait (when one was uploaded), a two-column
// table of every applicant detail in form order, and the document list.
// A missing portrait is fine; a portrait that can no longer be read from
// storage is a hard error for this step.
func (s *DocumentService) BuildSubmissionDocument(app *models.Application) ([]byte, error) {
	var photo []byte
	if app.PhotoPath != nil && *app.PhotoPath != "" {
		data, err := s.uploads.Read(*app.PhotoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load portrait: %w", err)
		}
		photo = data
	}

	imageExt := detectImageExtension(photo)
	if photo != nil && imageExt == "" {
		log.Printf("portrait for %s is not a png/jpeg payload, omitting image", app.TrackingID)
		photo = nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", buildContentTypes(imageExt, photo != nil)},
		{"_rels/.rels", []byte(packageRels)},
		{"word/_rels/document.xml.rels", buildDocumentRels(imageExt, photo != nil)},
		{"word/document.xml", buildDocumentXML(app, photo != nil)},
	}
	if photo != nil {
		entries = append(entries, struct {
			name string
			data []byte
		}{"word/media/image1." + imageExt, photo})
	}

	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write docx entry: %w", err)
		}
		if _, err := w.Write(entry.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write docx entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx: %w", err)
	}
	return buf.Bytes(), nil
}

func detectImageExtension(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	switch http.DetectContentType(payload) {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpeg"
	default:
		return ""
	}
}

func buildContentTypes(imageExt string, withImage bool) []byte {
	var b bytes.Buffer
	b.WriteString(contentTypesHeader)
	if withImage {
		fmt.Fprintf(&b, "\n<Default Extension=%q ContentType=\"image/%s\"/>", imageExt, imageExt)
	}
	b.WriteString("\n<Override PartName=\"/word/document.xml\" ContentType=\"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml\"/>")
	b.WriteString("\n</Types>")
	return b.Bytes()
}

func buildDocumentRels(imageExt string, withImage bool) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString("\n<Relationships xmlns=\"http://schemas.openxmlformats.org/package/2006/relationships\">")
	if withImage {
		fmt.Fprintf(&b, "\n<Relationship Id=\"rIdImage1\" Type=\"http://schemas.openxmlformats.org/officeDocument/2006/relationships/image\" Target=\"media/image1.%s\"/>", imageExt)
	}
	b.WriteString("\n</Relationships>")
	return b.Bytes()
}

func buildDocumentXML(app *models.Application, withImage bool) []byte {
	var b bytes.Buffer
	b.WriteString(documentOpen)

	writeParagraph(&b, "Scholarship Application", true, false)
	writeParagraph(&b, "Tracking ID: "+app.TrackingID, false, false)

	if withImage {
		writePortrait(&b)
	}

	writeDetailTable(&b, app.ApplicantDetails)

	if len(app.Documents) > 0 {
		writeParagraph(&b, "Submitted Documents", true, false)
		for _, doc := range app.Documents {
			writeParagraph(&b, fmt.Sprintf("%s: %s", doc.Name, doc.Path), false, false)
		}
	}

	b.WriteString(documentClose)
	return b.Bytes()
}

func writeParagraph(b *bytes.Buffer, text string, bold, centered bool) {
	b.WriteString("<w:p>")
	if centered {
		b.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	b.WriteString("<w:r>")
	if bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString("</w:t></w:r></w:p>")
}

func writeDetailTable(b *bytes.Buffer, details models.FieldList) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:bottom w:val="single" w:sz="4"/>` +
		`<w:left w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr><w:tblGrid><w:gridCol w:w="3000"/><w:gridCol w:w="6000"/></w:tblGrid>`)

	for _, field := range details {
		value := field.Value
		if value == "" {
			value = "N/A"
		}
		b.WriteString("<w:tr>")
		writeTableCell(b, utils.HumanizeFieldName(field.Key), true)
		writeTableCell(b, value, false)
		b.WriteString("</w:tr>")
	}

	b.WriteString("</w:tbl>")
	// Word requires a trailing paragraph after a table
	b.WriteString("<w:p/>")
}

func writeTableCell(b *bytes.Buffer, text string, bold bool) {
	b.WriteString("<w:tc><w:tcPr/>")
	writeParagraph(b, text, bold, false)
	b.WriteString("</w:tc>")
}

func writePortrait(b *bytes.Buffer) {
	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing>`)
	fmt.Fprintf(b, `<wp:inline distT="0" distB="0" distL="0" distR="0"><wp:extent cx="%d" cy="%d"/>`, portraitEMU, portraitEMU)
	b.WriteString(`<wp:docPr id="1" name="Portrait"/>`)
	b.WriteString(`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`)
	b.WriteString(`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString(`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`)
	b.WriteString(`<pic:nvPicPr><pic:cNvPr id="1" name="Portrait"/><pic:cNvPicPr/></pic:nvPicPr>`)
	b.WriteString(`<pic:blipFill><a:blip r:embed="rIdImage1"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`)
	fmt.Fprintf(b, `<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, portraitEMU, portraitEMU)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`)
	b.WriteString(`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`)
}

func escapeXML(s string) string {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
