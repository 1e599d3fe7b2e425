package epubkit

import (
	"archive/zip"
	"encoding/xml"
	"strings"
)

const (
	// encryptionFilePath is the standard path for the encryption descriptor.
	encryptionFilePath = "META-INF/encryption.xml"

	// sinfFilePath indicates Apple FairPlay DRM.
	sinfFilePath = "META-INF/sinf.xml"
)

// Font obfuscation algorithm URIs. These do NOT constitute DRM.
var fontObfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true, // IDPF font obfuscation
	"http://ns.adobe.com/pdf/enc#RC":     true, // Adobe font obfuscation
}

type xmlEncryption struct {
	XMLName       xml.Name           `xml:"encryption"`
	EncryptedData []xmlEncryptedData `xml:"EncryptedData"`
}

type xmlEncryptedData struct {
	EncryptionMethod struct {
		Algorithm string `xml:"Algorithm,attr"`
	} `xml:"EncryptionMethod"`
}

// checkDRM inspects the archive for DRM markers before anything is unpacked.
//
// Returns:
//   - (false, nil)             no encryption descriptor, or an empty one
//   - (true,  nil)             only font obfuscation entries
//   - (false, ErrDRMProtected) any other encrypted resource
func checkDRM(zr *zip.Reader, limit int64) (fontObfuscation bool, err error) {
	if findFileInsensitive(zr, sinfFilePath) != nil {
		return false, ErrDRMProtected
	}

	f := findFileInsensitive(zr, encryptionFilePath)
	if f == nil {
		return false, nil
	}

	data, err := readZipFile(f, limit)
	if err != nil {
		return false, err
	}

	var enc xmlEncryption
	if err := xml.Unmarshal(stripBOM(data), &enc); err != nil {
		// An unreadable descriptor is treated as potential DRM.
		return false, ErrDRMProtected
	}

	for _, ed := range enc.EncryptedData {
		if !fontObfuscationAlgorithms[strings.TrimSpace(ed.EncryptionMethod.Algorithm)] {
			return false, ErrDRMProtected
		}
		fontObfuscation = true
	}
	return fontObfuscation, nil
}
