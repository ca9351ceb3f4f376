package gateway

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/bardlex/minegate/internal/miner"
	"github.com/bardlex/minegate/pkg/errors"
)

// DefaultTarget is used when a start request omits target
const DefaultTarget = "000000ffffff0000000000000000000000000000000000000000000000000000"

// MsgInvalidIdentifier is returned for blank session ids and state handles
const MsgInvalidIdentifier = "invalid identifier"

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// StartRequest is the body of POST /mine/start. Optional fields are pointers
// so that defaults apply only when a field is absent or null.
type StartRequest struct {
	Hash      string  `json:"hash" validate:"required,len=64,hexstring"`
	Addr1     string  `json:"addr1" validate:"required,len=40,hexstring"`
	Addr2     string  `json:"addr2" validate:"required,len=40,hexstring"`
	Value     *int64  `json:"value" validate:"required,gte=0"`
	Timestamp *int64  `json:"timestamp"`
	Target    *string `json:"target" validate:"omitempty,len=64,hexstring"`
	TimeLimit *int64  `json:"time_limit" validate:"omitempty,gte=0"`
	Flag      *int    `json:"flag" validate:"omitempty,oneof=0 1"`
}

// Params applies defaults and returns the remote call parameters. The
// request must have passed validation.
func (r *StartRequest) Params(now time.Time) miner.StartParams {
	p := miner.StartParams{
		Hash:      r.Hash,
		Addr1:     r.Addr1,
		Addr2:     r.Addr2,
		Value:     *r.Value,
		Timestamp: now.Unix(),
		Target:    DefaultTarget,
	}

	if r.Timestamp != nil {
		p.Timestamp = *r.Timestamp
	}
	if r.Target != nil {
		p.Target = *r.Target
	}
	if r.TimeLimit != nil {
		p.TimeLimit = *r.TimeLimit
	}
	if r.Flag != nil {
		p.Flag = int32(*r.Flag)
	}

	return p
}

// ResumeRequest is the body of POST /mine/resume
type ResumeRequest struct {
	StateFile *string `json:"state_file" validate:"required"`
}

// newValidator builds the request validator. Field errors are reported
// under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("hexstring", func(fl validator.FieldLevel) bool {
		return hexPattern.MatchString(fl.Field().String())
	})

	return v
}

// bindJSON decodes the request body into dst and validates it
func (h *Handler) bindJSON(c *gin.Context, op string, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return decodeError(op, err)
	}

	if err := h.validate.Struct(dst); err != nil {
		return validationError(op, err)
	}

	return nil
}

// decodeError reports malformed bodies and JSON type mismatches
func decodeError(op string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.Wrap(err, errors.ErrorTypeValidation, op,
			fmt.Sprintf("%s: must be of type %s", typeErr.Field, jsonKind(typeErr.Type)))
	}

	return errors.Wrap(err, errors.ErrorTypeValidation, op, "request body must be a JSON object")
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return t.Kind().String()
	}
}

// validationError turns validator output into one message naming every
// offending field
func validationError(op string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(err, errors.ErrorTypeValidation, op, "invalid request")
	}

	msgs := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
		fields = append(fields, fe.Field())
	}

	return errors.Wrap(err, errors.ErrorTypeValidation, op, strings.Join(msgs, "; ")).
		WithContext("fields", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": field required"
	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", fe.Field(), fe.Param())
	case "hexstring":
		return fe.Field() + ": must be a hexadecimal string"
	case "gte":
		return fmt.Sprintf("%s: must be greater than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag())
	}
}

// checkIdentifier rejects blank session ids and state handles
func checkIdentifier(op, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New(errors.ErrorTypeValidation, op, MsgInvalidIdentifier)
	}
	return nil
}
