package properties

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/joho/godotenv"
	javaprops "github.com/magiconair/properties"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"

	"github.com/redhat-developer/service-binding-properties/pkg/envvars"
)

// Format names an output encoding.
type Format string

const (
	FormatYAML       Format = "yaml"
	FormatJSON       Format = "json"
	FormatEnv        Format = "env"
	FormatProperties Format = "properties"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatYAML, FormatJSON, FormatEnv, FormatProperties}

// ErrUnknownFormat is returned by Encode for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// Encode writes the properties to w in the given format.
func Encode(w io.Writer, props Properties, format Format) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatYAML:
		out, err = yaml.Marshal(map[string]interface{}(props))
	case FormatJSON:
		out, err = json.MarshalIndent(props, "", "  ")
		out = append(out, '\n')
	case FormatEnv:
		var env map[string]string
		env, err = envvars.FromProperties(props)
		if err == nil {
			var s string
			s, err = godotenv.Marshal(env)
			out = []byte(s + "\n")
		}
	case FormatProperties:
		out, err = javaProperties(props)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "could not encode properties as %s", format)
	}
	_, err = w.Write(out)
	return err
}

// javaProperties renders sorted key=value lines in the java.util.Properties format.
// The output is ISO-8859-1 as read by Properties.load(InputStream): characters
// beyond Latin-1 are written as \uXXXX escapes.
func javaProperties(props Properties) ([]byte, error) {
	jp := javaprops.NewProperties()
	jp.DisableExpansion = true
	jp.WriteSeparator = "="
	for _, k := range props.Keys() {
		v, ok, err := envvars.Value(props[k])
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", k)
		}
		if !ok {
			continue
		}
		if _, _, err := jp.Set(k, v); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := jp.Write(&buf, javaprops.ISO_8859_1); err != nil {
		return nil, err
	}
	return charmap.ISO8859_1.NewEncoder().Bytes(buf.Bytes())
}
