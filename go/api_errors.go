package shopserver

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	catalogapp "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	memberapp "github.com/Apurer/go-gin-shop-api/internal/domains/members/application"
	memberports "github.com/Apurer/go-gin-shop-api/internal/domains/members/ports"
	orderapp "github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-shop-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-shop-api/internal/shared/errors"
)

// problems maps every application sentinel to its RFC 7807 response. Unknown
// errors fall through to 500.
var problems = apierrors.NewChainedResponder("",
	apierrors.MapSentinel(memberapp.ErrDuplicateName, apierrors.ErrConflict),
	apierrors.MapSentinel(orderapp.ErrConflict, apierrors.ErrConflict),
	apierrors.MapSentinel(memberports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(orderports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(catalogports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(orderapp.ErrReferenceNotFound, apierrors.ErrUnprocessable),
	apierrors.MapSentinel(memberapp.ErrInvalidInput, apierrors.ErrBadRequest),
	apierrors.MapSentinel(orderapp.ErrInvalidInput, apierrors.ErrBadRequest),
	apierrors.MapSentinel(catalogapp.ErrInvalidInput, apierrors.ErrBadRequest),
)

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

// respondBindError reports binding failures with per-field validation tags.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		problems.ValidationFailed(c, fields)
		return
	}
	problems.BadRequest(c, err.Error())
}

var registerFieldNames sync.Once

// registerJSONFieldNames makes validation errors name fields by their json or form tag.
func registerJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}
