package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/NoraMoser/exploring/internal/model"
	"github.com/go-playground/validator/v10"
)

const maxQueryLength = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their request parameter name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("param"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

type listParams struct {
	Query string `param:"q" validate:"max=100"`
	Page  int    `param:"page" validate:"gte=1"`
}

type favoriteBody struct {
	Code string `json:"code" param:"code" validate:"required,len=3,alpha"`
}

// parseListRequest reads q, page and prev_q. A missing page means page 1;
// a missing prev_q means the caller did not track the previous query.
func parseListRequest(r *http.Request) (model.ListRequest, error) {
	values := r.URL.Query()
	params := listParams{Query: values.Get("q"), Page: 1}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return model.ListRequest{}, fmt.Errorf("invalid page parameter")
		}
		params.Page = page
	}

	if err := validate.Struct(params); err != nil {
		return model.ListRequest{}, err
	}

	req := model.ListRequest{Query: params.Query, Page: params.Page}
	if values.Has("prev_q") {
		prev := values.Get("prev_q")
		req.PreviousQuery = &prev
	}
	return req, nil
}

func validateCode(code string) error {
	if err := validate.Var(code, "required,len=3,alpha"); err != nil {
		return fmt.Errorf("invalid country code %q", code)
	}
	return nil
}

// validationMessage turns validator errors into a short client-facing message
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "len":
			msgs = append(msgs, fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "alpha":
			msgs = append(msgs, fmt.Sprintf("%s must contain letters only", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
