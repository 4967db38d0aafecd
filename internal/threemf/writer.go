package threemf

import (
	"encoding/xml"
	"fmt"

	"github.com/klauspost/compress/zip"
)

const (
	defaultPrecision = 6
	maxPrecision     = 16

	modelPath = "3D/3dmodel.model"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
	<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
	<Default Extension="model" ContentType="application/vnd.ms-package.3dmanufacturing-3dmodel+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
	<Relationship Id="rel0" Target="/3D/3dmodel.model" Type="http://schemas.microsoft.com/3dmanufacturing/2013/01/3dmodel"/>
</Relationships>`

type writer struct {
	model     *model
	precision uint32
	packaged  bool
}

func (w *writer) SetDecimalPrecision(precision uint32) error {
	if precision < 1 || precision > maxPrecision {
		return newError(ErrorCodeInvalidParam, "decimal precision %d out of range 1..%d", precision, maxPrecision)
	}
	w.precision = precision
	return nil
}

func (w *writer) DecimalPrecision() uint32 {
	return w.precision
}

func (w *writer) WriteToCallback(write WriteFunc, seek SeekFunc) error {
	if write == nil {
		return newError(ErrorCodeInvalidParam, "write callback is required")
	}
	if seek != nil {
		if err := seek(0); err != nil {
			return newError(ErrorCodeIO, "error seeking output: %v", err)
		}
	}

	modelXML, err := w.marshalModel()
	if err != nil {
		return newError(ErrorCodeIO, "error marshaling XML: %v", err)
	}

	out := callbackWriter(write)
	if !w.packaged {
		if _, err := out.Write(modelXML); err != nil {
			return newError(ErrorCodeIO, "error writing model XML: %v", err)
		}
		return nil
	}

	if err := writePackage(out, modelXML); err != nil {
		return newError(ErrorCodeIO, "%v", err)
	}
	return nil
}

func (w *writer) marshalModel() ([]byte, error) {
	body, err := xml.MarshalIndent(w.model.document(w.precision), "", "\t")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// writePackage writes the OPC container around the model part. Entries carry
// no modification time so that equal models give equal bytes.
func writePackage(out callbackWriter, modelXML []byte) error {
	zipWriter := zip.NewWriter(out)

	entries := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{modelPath, modelXML},
	}

	for _, entry := range entries {
		w, err := zipWriter.CreateHeader(&zip.FileHeader{Name: entry.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("error creating %s entry: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return fmt.Errorf("error writing %s: %w", entry.name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("error finishing package: %w", err)
	}
	return nil
}

// callbackWriter adapts a WriteFunc to io.Writer
type callbackWriter WriteFunc

func (c callbackWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := c(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
