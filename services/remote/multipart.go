package remote

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/gradedesk/core/coursework"
)

type formField struct {
	name  string
	value string
}

type formFile struct {
	name   string
	upload *coursework.Upload
}

func multipartRequest(path string, fields []formField, files []formFile, payloadKey, defaultMsg string) (request, error) {
	r := request{method: http.MethodPost, path: path, payloadKey: payloadKey, defaultMsg: defaultMsg}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return r, errors.Wrapf(err, "writing field %s", f.name)
		}
	}
	for _, f := range files {
		if f.upload == nil {
			return r, errors.Errorf("missing file %s", f.name)
		}
		part, err := w.CreatePart(fileHeader(f.name, f.upload.Filename))
		if err != nil {
			return r, errors.Wrapf(err, "creating part %s", f.name)
		}
		if _, err = part.Write(f.upload.Data); err != nil {
			return r, errors.Wrapf(err, "writing part %s", f.name)
		}
	}
	if err := w.Close(); err != nil {
		return r, errors.Wrap(err, "closing multipart writer")
	}

	r.body = body.Bytes()
	r.contentType = w.FormDataContentType()
	return r, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(field, filename string) textproto.MIMEHeader {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filepath.Base(filename))))
	h.Set("Content-Type", ct)
	return h
}
