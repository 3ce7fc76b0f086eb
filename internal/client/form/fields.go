package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophfolio/internal/client/models"
	"github.com/dmitrijs2005/gophfolio/internal/common"
)

// Field names a draft value. Names match the JSON names of models.Draft.
type Field string

const (
	FieldTitle         Field = "title"
	FieldDescription   Field = "description"
	FieldTechnologies  Field = "technologies"
	FieldRepositoryURL Field = "repositoryUrl"
	FieldDemoURL       Field = "demoUrl"
	FieldThumbnailURL  Field = "thumbnailUrl"
	FieldImages        Field = "images"
	FieldFeatured      Field = "featured"
)

// Fields lists every editable field in display order.
var Fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldTechnologies,
	FieldRepositoryURL,
	FieldDemoURL,
	FieldThumbnailURL,
	FieldImages,
	FieldFeatured,
}

// ParseField resolves a user-typed field name, ignoring case.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if strings.EqualFold(string(f), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownField, name)
}

// setField writes value into the draft field. List fields accept either a
// comma separated string or a []string; featured accepts a bool or a string
// understood by strconv.ParseBool.
func setField(d *models.Draft, f Field, value any) error {
	switch f {
	case FieldTitle:
		return setText(&d.Title, f, value)
	case FieldDescription:
		return setText(&d.Description, f, value)
	case FieldRepositoryURL:
		return setText(&d.RepositoryURL, f, value)
	case FieldDemoURL:
		return setText(&d.DemoURL, f, value)
	case FieldThumbnailURL:
		return setText(&d.ThumbnailURL, f, value)
	case FieldTechnologies:
		return setList(&d.Technologies, f, value)
	case FieldImages:
		return setList(&d.Images, f, value)
	case FieldFeatured:
		switch v := value.(type) {
		case bool:
			d.Featured = v
			return nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s expects true or false, got %q", common.ErrFieldType, f, v)
			}
			d.Featured = b
			return nil
		}
		return typeError(f, value)
	}
	return fmt.Errorf("%w: %q", common.ErrUnknownField, f)
}

func setText(dst *string, f Field, value any) error {
	v, ok := value.(string)
	if !ok {
		return typeError(f, value)
	}
	*dst = v
	return nil
}

func setList(dst *[]string, f Field, value any) error {
	switch v := value.(type) {
	case string:
		*dst = models.ParseCommaList(v)
	case []string:
		*dst = append([]string{}, v...)
	default:
		return typeError(f, value)
	}
	return nil
}

func typeError(f Field, value any) error {
	return fmt.Errorf("%w: %s does not accept %T", common.ErrFieldType, f, value)
}
