package web

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pranav-c01/ICT-Training/internal/azure"
	"github.com/pranav-c01/ICT-Training/internal/input"
	"github.com/pranav-c01/ICT-Training/internal/qna"
	"github.com/pranav-c01/ICT-Training/internal/render"
	"github.com/pranav-c01/ICT-Training/internal/textanalysis"
	"github.com/pranav-c01/ICT-Training/internal/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postFile(t *testing.T, path, field, name string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return buf.Bytes()
}

func TestHealthz(t *testing.T) {
	w := serve(t, New(Apps{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDisabledAppsAreNotRouted(t *testing.T) {
	s := New(Apps{QnA: &qna.MockAnswerer{}})

	assert.Equal(t, http.StatusNotFound, serve(t, s, httptest.NewRequest(http.MethodGet, "/text", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, s, httptest.NewRequest(http.MethodGet, "/image", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(t, s, httptest.NewRequest(http.MethodGet, "/qna", nil)).Code)

	index := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, index.Body.String(), `href="/qna"`)
	assert.NotContains(t, index.Body.String(), `href="/text"`)
}

func TestAnalyzeText_BlankInputWarnsWithoutCalls(t *testing.T) {
	m := &textanalysis.MockAnalyzer{}
	s := New(Apps{Text: m})

	w := serve(t, s, postForm("/text", url.Values{"mode": {"typed"}, "text": {"   \n  "}}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="warning">`+render.MsgEmptyText+`</div>`)
	assert.Equal(t, 0, m.CallCount())
}

func TestAnalyzeText_Typed(t *testing.T) {
	m := &textanalysis.MockAnalyzer{
		DetectLanguageFunc: func(ctx context.Context, text string) (textanalysis.Language, error) {
			return textanalysis.Language{Name: "English"}, nil
		},
		AnalyzeSentimentFunc: func(ctx context.Context, text string) (textanalysis.Sentiment, error) {
			return textanalysis.Sentiment{Label: "positive", Scores: textanalysis.Scores{Positive: 0.9, Neutral: 0.08, Negative: 0.02}}, nil
		},
		RecognizeLinkedEntitiesFunc: func(ctx context.Context, text string) ([]textanalysis.LinkedEntity, error) {
			return nil, &azure.ServiceError{StatusCode: 403, Reason: "Forbidden", Message: "Access denied"}
		},
	}
	s := New(Apps{Text: m})

	w := serve(t, s, postForm("/text", url.Values{"text": {"I loved the <b>hotel</b>."}}))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, m.CallCount())
	assert.Contains(t, body, "Detected Language: English")
	assert.Contains(t, body, "Overall Sentiment: positive")
	assert.Contains(t, body, `<meter min="0" max="1" value="0.08"></meter>`)
	assert.Contains(t, body, `<div class="info">`+render.MsgNoEntities+`</div>`)
	assert.Contains(t, body, `<div class="error">An error occurred: Forbidden - Access denied (status: 403)</div>`)
	assert.Contains(t, body, "I loved the &lt;b&gt;hotel&lt;/b&gt;.")
}

func TestAnalyzeText_Upload(t *testing.T) {
	var got string
	m := &textanalysis.MockAnalyzer{
		DetectLanguageFunc: func(ctx context.Context, text string) (textanalysis.Language, error) {
			got = text
			return textanalysis.Language{Name: "French"}, nil
		},
	}
	s := New(Apps{Text: m})

	w := serve(t, s, postFile(t, "/text", "file", "review.txt", []byte("Très bien."), map[string]string{"mode": "upload"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Très bien.", got)
	assert.Contains(t, w.Body.String(), "Detected Language: French")
}

func TestAnalyzeText_UploadMissingFile(t *testing.T) {
	m := &textanalysis.MockAnalyzer{}
	s := New(Apps{Text: m})

	w := serve(t, s, postForm("/text", url.Values{"mode": {"upload"}}))

	assert.Contains(t, w.Body.String(), render.MsgEmptyText)
	assert.Equal(t, 0, m.CallCount())
}

func TestAnalyzeText_UploadWithCommas(t *testing.T) {
	review := "Good hotel, friendly staff.\nThe food was bad, though.\n"
	var got string
	m := &textanalysis.MockAnalyzer{
		DetectLanguageFunc: func(ctx context.Context, text string) (textanalysis.Language, error) {
			got = text
			return textanalysis.Language{Name: "English"}, nil
		},
	}
	s := New(Apps{Text: m})

	w := serve(t, s, postFile(t, "/text", "file", "review.txt", []byte(review), map[string]string{"mode": "upload"}))

	assert.Equal(t, review, got)
	assert.Equal(t, 5, m.CallCount())
	assert.NotContains(t, w.Body.String(), input.ErrNotText.Error())
}

func TestAnalyzeText_BodyTooLarge(t *testing.T) {
	m := &textanalysis.MockAnalyzer{}
	s := New(Apps{Text: m})

	big := bytes.Repeat([]byte("a"), textBodyLimit+10)
	w := serve(t, s, postFile(t, "/text", "file", "big.txt", big, map[string]string{"mode": "upload"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="warning">`+input.ErrTextTooLarge.Error()+`</div>`)
	assert.NotContains(t, w.Body.String(), render.MsgEmptyText)

	w = serve(t, s, postForm("/text", url.Values{"mode": {"typed"}, "text": {string(big)}}))
	assert.Contains(t, w.Body.String(), `<div class="warning">`+input.ErrTextTooLarge.Error()+`</div>`)

	assert.Equal(t, 0, m.CallCount())
}

func TestAskQuestion(t *testing.T) {
	m := &qna.MockAnswerer{
		GetAnswersFunc: func(ctx context.Context, question string) ([]qna.Answer, error) {
			return []qna.Answer{{Text: "Call us at 555.", Confidence: 0.87}}, nil
		},
	}
	s := New(Apps{QnA: m})

	w := serve(t, s, postForm("/qna", url.Values{"question": {"How do I cancel?"}}))

	body := w.Body.String()
	assert.Equal(t, []string{"How do I cancel?"}, m.Questions)
	assert.Contains(t, body, "<strong>Answer:</strong> Call us at 555.")
	assert.Contains(t, body, "<strong>Confidence Score:</strong> 0.87")
}

func TestAskQuestion_EmptyAndErrors(t *testing.T) {
	m := &qna.MockAnswerer{
		GetAnswersFunc: func(ctx context.Context, question string) ([]qna.Answer, error) {
			return nil, errors.New("query knowledge base: request failed")
		},
	}
	s := New(Apps{QnA: m})

	w := serve(t, s, postForm("/qna", url.Values{"question": {""}}))
	assert.Contains(t, w.Body.String(), render.MsgEmptyQuestion)
	assert.Empty(t, m.Questions)

	w = serve(t, s, postForm("/qna", url.Values{"question": {"Hi"}}))
	assert.Contains(t, w.Body.String(), `<div class="error">Error: query knowledge base: request failed</div>`)
}

func TestAskQuestion_NoAnswer(t *testing.T) {
	s := New(Apps{QnA: &qna.MockAnswerer{}})

	w := serve(t, s, postForm("/qna", url.Values{"question": {"Anything?"}}))

	assert.Contains(t, w.Body.String(), "<p>No answer found.</p>")
}

func TestAnalyzeImage(t *testing.T) {
	m := &vision.MockAnalyzer{
		AnalyzeFunc: func(ctx context.Context, image []byte, features []vision.Feature) (*vision.Result, error) {
			return &vision.Result{
				Caption: &vision.Caption{Text: "a black square", Confidence: 0.5},
				Objects: []vision.Object{{Name: "square", Confidence: 0.6, Box: vision.BoundingBox{X: 2, Y: 2, Width: 10, Height: 10}}},
			}, nil
		},
	}
	s := New(Apps{Image: m})

	w := serve(t, s, postFile(t, "/image", "image", "square.png", pngBytes(t), nil))

	body := w.Body.String()
	assert.Equal(t, 1, m.Calls)
	assert.Contains(t, body, render.MsgAnalyzingImage)
	assert.Contains(t, body, "<strong>Caption:</strong> &#39;a black square&#39; (Confidence: 50.00%)")
	assert.Contains(t, body, `src="data:image/jpeg;base64,`)
	assert.NotContains(t, body, "People detected")
}

func TestAnalyzeImage_InvalidUploads(t *testing.T) {
	m := &vision.MockAnalyzer{}
	s := New(Apps{Image: m})

	w := serve(t, s, postForm("/image", url.Values{}))
	assert.Contains(t, w.Body.String(), render.MsgEmptyImage)

	w = serve(t, s, postFile(t, "/image", "image", "empty.png", nil, nil))
	assert.Contains(t, w.Body.String(), render.MsgEmptyImage)

	w = serve(t, s, postFile(t, "/image", "image", "notes.png", []byte("hello there"), nil))
	assert.Contains(t, w.Body.String(), input.ErrUnsupportedImage.Error())

	assert.Equal(t, 0, m.Calls)
}

func TestAnalyzeImage_BodyTooLarge(t *testing.T) {
	m := &vision.MockAnalyzer{}
	s := New(Apps{Image: m})

	big := append(pngBytes(t), bytes.Repeat([]byte{0}, imageBodyLimit)...)
	w := serve(t, s, postFile(t, "/image", "image", "huge.png", big, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="warning">`+input.ErrImageTooLarge.Error()+`</div>`)
	assert.NotContains(t, w.Body.String(), render.MsgEmptyImage)
	assert.Equal(t, 0, m.Calls)
}

func TestAnalyzeImage_ServiceError(t *testing.T) {
	m := &vision.MockAnalyzer{
		AnalyzeFunc: func(ctx context.Context, image []byte, features []vision.Feature) (*vision.Result, error) {
			return nil, &azure.ServiceError{StatusCode: 401, Reason: "Unauthorized", Message: "Invalid key"}
		},
	}
	s := New(Apps{Image: m})

	w := serve(t, s, postFile(t, "/image", "image", "square.png", pngBytes(t), nil))

	assert.Contains(t, w.Body.String(), "<div class=\"error\">Error: Unauthorized - Invalid key (status: 401)</div>")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Apps{}).Run(ctx, "127.0.0.1:0")
	}()

	cancel()
	assert.NoError(t, <-done)
}
