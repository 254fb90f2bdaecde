package world

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/world-service/internal/platform/logging"
)

const (
	// Path is the route the greeting is served on.
	Path = "/world"
	// Greeting is the fixed response body.
	Greeting = "World"

	contentType = "text/plain; charset=utf-8"
)

var allowedMethods = strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodOptions}, ", ")

// Register wires the world route into the provided API router.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-world",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Get the world greeting",
		Description: "Returns the literal text `World`. Query parameters, headers and request bodies are ignored.",
		Tags:        []string{"World"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Greeting",
				Content: map[string]*huma.MediaType{
					"text/plain": {
						Schema: &huma.Schema{
							Type:     huma.TypeString,
							Examples: []any{Greeting},
						},
					},
				},
			},
		},
	}, getHandler)

	huma.Register(api, huma.Operation{
		OperationID: "head-world",
		Method:      http.MethodHead,
		Path:        Path,
		Summary:     "Get the world greeting headers",
		Tags:        []string{"World"},
	}, headHandler)

	huma.Register(api, huma.Operation{
		OperationID: "options-world",
		Method:      http.MethodOptions,
		Path:        Path,
		Summary:     "List the methods the greeting accepts",
		Tags:        []string{"World"},
	}, optionsHandler)
}

func getHandler(ctx context.Context, _ *struct{}) (*GetOutput, error) {
	applog.LogInfo(ctx, "world get", zap.String("path", Path))
	return &GetOutput{ContentType: contentType, Body: []byte(Greeting)}, nil
}

func headHandler(ctx context.Context, _ *struct{}) (*HeadOutput, error) {
	applog.LogInfo(ctx, "world head", zap.String("path", Path))
	return &HeadOutput{ContentType: contentType, ContentLength: strconv.Itoa(len(Greeting))}, nil
}

func optionsHandler(_ context.Context, _ *struct{}) (*OptionsOutput, error) {
	return &OptionsOutput{Allow: allowedMethods}, nil
}
