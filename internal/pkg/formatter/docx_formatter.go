package formatter

import (
	"bytes"

	"github.com/roeev/docuchat/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(title string, turns []*entity.Prompt) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(title)

	for _, turn := range turns {
		doc.AddParagraph()

		questionPar := doc.AddParagraph()
		questionRun := questionPar.AddRun()
		questionRun.Properties().SetBold(true)
		questionRun.AddText(questionPrefix + turn.Question)

		answerPar := doc.AddParagraph()
		answerRun := answerPar.AddRun()
		answerRun.AddText(answerPrefix + turn.Response)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
