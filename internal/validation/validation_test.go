package validation_test

import (
	"testing"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/validation"

	"github.com/stretchr/testify/require"
)

func validService() *models.ServicePayload {
	return &models.ServicePayload{
		Name:        "Weather API",
		Description: "Hourly forecasts",
		PayModel:    models.PayModelFree,
		Tags:        []string{"API", "weather"},
	}
}

func TestService_Valid(t *testing.T) {
	require.NoError(t, validation.Service(validService()))
}

func TestService_NoTags(t *testing.T) {
	p := validService()
	p.Tags = nil

	err := validation.Service(p)
	require.Error(t, err)

	verr := &validation.Error{}
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	require.Equal(t, "tags", verr.Violations[0].Field)
}

func TestService_CategoryTags(t *testing.T) {
	t.Run("missing category", func(t *testing.T) {
		p := validService()
		p.Tags = []string{"weather"}

		verr := requireValidationErr(t, validation.Service(p))
		require.Equal(t, "tags", verr.Violations[0].Field)
		require.Contains(t, verr.Violations[0].Reason, "required")
	})

	t.Run("both categories", func(t *testing.T) {
		p := validService()
		p.Tags = []string{"API", "Microservice"}

		verr := requireValidationErr(t, validation.Service(p))
		require.Contains(t, verr.Violations[0].Reason, "mutually exclusive")
	})
}

func TestService_CollectsAllViolations(t *testing.T) {
	p := &models.ServicePayload{
		Name:        "",
		Description: "",
		PayModel:    models.PayModel("Donationware"),
		Tags:        nil,
	}

	verr := requireValidationErr(t, validation.Service(p))

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "description")
	require.Contains(t, fields, "pay_model")
	require.Contains(t, fields, "tags")
}

func TestVersion_DuplicateResponseCode(t *testing.T) {
	p := &models.VersionPayload{
		VersionName: "v1",
		Endpoints: []*models.EndpointPayload{
			{
				Method: "GET",
				Link:   "/forecast",
				Responses: []*models.ResponsePayload{
					{Code: "200", Description: "ok"},
					{Code: "200", Description: "also ok"},
				},
			},
		},
	}

	verr := requireValidationErr(t, validation.Version(p))
	require.Len(t, verr.Violations, 1)
	require.Contains(t, verr.Violations[0].Reason, `duplicate response code "200"`)
}

func TestVersion_DuplicateParameterName(t *testing.T) {
	p := &models.VersionPayload{
		VersionName: "v1",
		Endpoints: []*models.EndpointPayload{
			{
				Method: "POST",
				Link:   "/forecast",
				Parameters: []*models.ParameterPayload{
					{Name: "city", Type: models.ParameterQuery, ValueType: "string"},
					{Name: "city", Type: models.ParameterBody, ValueType: "string"},
				},
			},
		},
	}

	verr := requireValidationErr(t, validation.Version(p))
	require.Contains(t, verr.Violations[0].Reason, `duplicate parameter name "city"`)
}

func TestVersion_EmptyName(t *testing.T) {
	verr := requireValidationErr(t, validation.Version(&models.VersionPayload{}))
	require.Equal(t, "version_name", verr.Violations[0].Field)
}

func TestReason(t *testing.T) {
	require.NoError(t, validation.Reason("looks good"))
	require.Error(t, validation.Reason(""))
	require.Error(t, validation.Reason("   \t"))
}

func requireValidationErr(t *testing.T, err error) *validation.Error {
	t.Helper()
	require.Error(t, err)
	verr := &validation.Error{}
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Violations)
	return verr
}
