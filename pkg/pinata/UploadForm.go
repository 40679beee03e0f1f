package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

// UploadForm holds everything needed to build the multipart body for
// Pinata's upload endpoint. The form is plain data so a fresh body can
// be encoded for every send; a multipart body is consumed on write and
// must never be reused across attempts.
type UploadForm struct {
	FileData  []byte
	Filename  string
	Name      string
	GroupID   string
	Keyvalues map[string]string
}

func (f UploadForm) encode() (*bytes.Buffer, string, error) {
	var (
		err error
	)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err = writer.WriteField("network", "public"); err != nil {
		return nil, "", fmt.Errorf("error writing network field: %w", err)
	}

	filePart, err := writer.CreateFormFile("file", f.Filename)

	if err != nil {
		return nil, "", fmt.Errorf("error creating file part: %w", err)
	}

	if _, err = filePart.Write(f.FileData); err != nil {
		return nil, "", fmt.Errorf("error writing file data: %w", err)
	}

	if err = writer.WriteField("name", f.Name); err != nil {
		return nil, "", fmt.Errorf("error writing name field: %w", err)
	}

	if f.GroupID != "" {
		if err = writer.WriteField("group_id", f.GroupID); err != nil {
			return nil, "", fmt.Errorf("error writing group_id field: %w", err)
		}
	}

	keyvalues, err := json.Marshal(f.Keyvalues)

	if err != nil {
		return nil, "", fmt.Errorf("error encoding keyvalues: %w", err)
	}

	if err = writer.WriteField("keyvalues", string(keyvalues)); err != nil {
		return nil, "", fmt.Errorf("error writing keyvalues field: %w", err)
	}

	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("error finalizing multipart form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
