package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	generationhttp "video-studio/internal/generation/adapter/http"
	"video-studio/internal/generation/domain/model"
	"video-studio/internal/generation/usecase"
	"video-studio/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// mockGenerationUsecase is a testify mock for usecase.GenerationUsecaseInterface.
type mockGenerationUsecase struct {
	mock.Mock
}

func (m *mockGenerationUsecase) Generate(ctx context.Context, req model.GenerateRequest) (*model.GenerateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GenerateResult), args.Error(1)
}

func (m *mockGenerationUsecase) Describe() usecase.ServiceDescriptor {
	args := m.Called()
	return args.Get(0).(usecase.ServiceDescriptor)
}

type GenerationHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockGenerationUsecase
}

func (suite *GenerationHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockGenerationUsecase{}
	suite.app = fiber.New()

	handler := generationhttp.NewGenerationHTTPHandler(suite.mockUsecase, logger.NewLogger())
	handler.SetupGenerationRoutes(suite.app)
}

func (suite *GenerationHTTPTestSuite) postGenerate(body map[string]interface{}) *http.Response {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	suite.Require().NoError(err)
	return resp
}

func (suite *GenerationHTTPTestSuite) decodeBody(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var body map[string]interface{}
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (suite *GenerationHTTPTestSuite) TestGenerate_Success() {
	result := &model.GenerateResult{
		ID:       "video_1_abc",
		VideoURL: "https://cdn.example.com/clip.mp4",
		Source:   model.SourceExtracted,
		Metadata: model.Metadata{Prompt: "a prompt", Duration: 10},
	}
	suite.mockUsecase.On("Generate", mock.Anything, mock.Anything).Return(result, nil)

	resp := suite.postGenerate(map[string]interface{}{
		"prompt":   "a prompt",
		"duration": 10,
	})

	suite.Equal(http.StatusOK, resp.StatusCode)
	body := suite.decodeBody(resp)
	suite.Equal(true, body["success"])
	suite.Equal("video_1_abc", body["id"])
	suite.Equal("https://cdn.example.com/clip.mp4", body["videoUrl"])
	suite.Equal("extracted", body["source"])
}

func (suite *GenerationHTTPTestSuite) TestGenerate_ErrorMapping() {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid prompt", usecase.ErrInvalidPrompt, http.StatusBadRequest, "Invalid or missing prompt"},
		{"invalid duration", usecase.ErrInvalidDuration, http.StatusBadRequest, "Duration must be between 5 and 60 seconds"},
		{"timeout", usecase.ErrTimedOut, http.StatusRequestTimeout, "Video generation timed out. Please try again with a shorter duration or simpler prompt."},
		{"upstream status", &usecase.UpstreamError{StatusCode: 503}, http.StatusBadGateway, "AI service error: 503. Please try again."},
		{"upstream format", usecase.ErrUpstreamFormat, http.StatusBadGateway, "Invalid response from AI service"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockUsecase.On("Generate", mock.Anything, mock.Anything).Return(nil, tc.err)

			resp := suite.postGenerate(map[string]interface{}{
				"prompt":   "a prompt",
				"duration": 10,
			})

			suite.Equal(tc.wantStatus, resp.StatusCode)
			body := suite.decodeBody(resp)
			suite.Equal(false, body["success"])
			suite.Equal(tc.wantError, body["error"])
		})
	}
}

func (suite *GenerationHTTPTestSuite) TestDescribe() {
	suite.mockUsecase.On("Describe").Return(usecase.ServiceDescriptor{
		Service: "AI Video Generation API",
		Model:   "replicate/google/veo-3",
		Status:  "active",
	})

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	resp, err := suite.app.Test(req)
	suite.Require().NoError(err)

	suite.Equal(http.StatusOK, resp.StatusCode)
	body := suite.decodeBody(resp)
	suite.Equal("AI Video Generation API", body["service"])
	suite.Equal("active", body["status"])
}

func TestGenerationHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(GenerationHTTPTestSuite))
}
