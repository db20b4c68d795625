package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/domain"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/imageurl"
	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholder = "https://pets.example.org/images/placeholder.png"

type recordedCall struct {
	endpoint string
	status   int
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) ObserveAPIRequest(endpoint string, status int, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{endpoint, status})
}

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	resolver := imageurl.NewResolver(imageurl.Config{
		Host:           "https://pets.example.org",
		BasePath:       "/images/",
		StoragePrefix:  "/storage/",
		PlaceholderURL: placeholder,
	})
	return New(srv.URL+"/api", 0, resolver, logger.NewNop(), opts...)
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestListPetsDecodesDataEnvelope(t *testing.T) {
	rec := &fakeRecorder{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeBody(w, http.StatusOK, `{"data":{"orders":[
			{"id":1,"kind":"кошка","district":"Невский","date":"14-03-2024","photos":"/storage/images/cat.png","status":"active","phone":79111234567},
			{"id":"2","kind":"собака","date":"15-03-2024","photos":["a.jpg","b.jpg"],"mark":null}
		]}}`)
	}, WithRecorder(rec))

	pets, err := c.ListPets(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 2)

	assert.Equal(t, "1", pets[0].ID)
	assert.Equal(t, "https://pets.example.org/storage/images/cat.png", pets[0].Image)
	assert.Equal(t, domain.StatusActive, pets[0].Status)
	assert.Equal(t, "79111234567", pets[0].Phone)

	assert.Equal(t, "2", pets[1].ID)
	assert.Equal(t, "https://pets.example.org/images/a.jpg", pets[1].Image)
	assert.Len(t, pets[1].Photos, 2)
	assert.Empty(t, pets[1].Mark)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, recordedCall{"list_pets", http.StatusOK}, rec.calls[0])
}

func TestGetPetAcceptsEveryEnvelope(t *testing.T) {
	bodies := map[string]string{
		"pet array":  `{"data":{"pet":[{"id":7,"kind":"кот","photo1":"x.jpg"}]}}`,
		"pet object": `{"pet":{"id":7,"kind":"кот","photo1":"x.jpg"}}`,
		"order":      `{"order":{"id":7,"kind":"кот","photo1":"x.jpg"}}`,
		"bare":       `{"id":7,"kind":"кот","photo1":"x.jpg"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/pets/7", r.URL.Path)
				writeBody(w, http.StatusOK, body)
			})
			pet, err := c.GetPet(context.Background(), "7")
			require.NoError(t, err)
			assert.Equal(t, "7", pet.ID)
			assert.Equal(t, "кот", pet.Kind)
			assert.Equal(t, "https://pets.example.org/images/x.jpg", pet.Image)
		})
	}
}

func TestGetPetUnknownShapeIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"something":"else"}`)
	})
	_, err := c.GetPet(context.Background(), "7")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestListingWithoutImageGetsPlaceholder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeBody(w, http.StatusOK, `{"data":{"pets":[{"id":3,"kind":"попугай"}]}}`)
	})
	pets, err := c.Slider(context.Background())
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, placeholder, pets[0].Image)
	assert.Empty(t, pets[0].Photos)
}

func TestSearchPetsOmitsEmptyParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/order", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Невский", q.Get("district"))
		_, hasKind := q["kind"]
		assert.False(t, hasKind, "empty kind must be omitted")
		writeBody(w, http.StatusOK, `{"data":{"orders":[]}}`)
	})
	pets, err := c.SearchPets(context.Background(), domain.Filters{District: "Невский", Kind: ""})
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestBearerTokenAttachedFromContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeBody(w, http.StatusOK, `{"data":{"user":[{"id":5,"name":"Ира","email":"ira@example.com","registrationDate":"01-02-2024"}]}}`)
	})
	profile, err := c.Me(WithToken(context.Background(), "secret"))
	require.NoError(t, err)
	assert.Equal(t, "5", profile.ID)
	assert.Equal(t, "01-02-2024", profile.RegistrationDate)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeBody(w, http.StatusOK, `{"data":{"orders":[]}}`)
	})
	_, err := c.ListPets(context.Background())
	require.NoError(t, err)
}

func TestLoginSendsJSONAndReadsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"phone":"+79111234567","password":"pw"}`, string(body))
		writeBody(w, http.StatusOK, `{"data":{"token":"abc"}}`)
	})
	token, err := c.Login(context.Background(), domain.Credentials{Phone: "+79111234567", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestErrorShapes(t *testing.T) {
	t.Run("validation with fields", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusUnprocessableEntity, `{"error":{"code":422,"message":"Validation error","errors":{"phone":["invalid"],"email":"taken"}}}`)
		})
		err := c.Register(context.Background(), domain.Registration{})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Validation error", apiErr.Message)
		assert.Equal(t, "email: taken\nphone: invalid", apiErr.Hint())
	})

	t.Run("plain message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusUnauthorized, `{"message":"Unauthorized"}`)
		})
		_, err := c.Me(context.Background())
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
		assert.Equal(t, "Unauthorized", err.Error())
	})

	t.Run("forbidden is not a stale token", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusForbidden, `{"message":"Forbidden"}`)
		})
		err := c.DeletePet(context.Background(), "1")
		require.Error(t, err)
		assert.False(t, IsUnauthorized(err))
		assert.Equal(t, "Forbidden", err.Error())
	})

	t.Run("no body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		err := c.DeletePet(context.Background(), "1")
		require.Error(t, err)
		assert.Equal(t, "HTTP 500", err.Error())
	})

	t.Run("network", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := New(srv.URL, 0, imageurl.NewResolver(imageurl.Config{PlaceholderURL: placeholder}), logger.NewNop())
		_, err := c.ListPets(context.Background())
		require.Error(t, err)
		assert.True(t, IsNetwork(err))
		assert.False(t, IsUnauthorized(err))
	})
}

func TestCreatePetSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pets/new", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "кошка", r.FormValue("kind"))
		assert.Equal(t, "1", r.FormValue("confirm"))
		_, hasMark := r.MultipartForm.Value["mark"]
		assert.False(t, hasMark)
		f, hdr, err := r.FormFile("photo1")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "cat.png", hdr.Filename)
		_, _, err = r.FormFile("photo2")
		assert.Error(t, err)
		writeBody(w, http.StatusOK, `{"data":{"id":42,"status":"ok"}}`)
	})

	id, err := c.CreatePet(context.Background(), domain.ListingForm{
		Name: "Ира", Phone: "+79111234567", Email: "ira@example.com",
		Kind: "кошка", District: "Невский", Description: "рыжая",
		Photo1:  &domain.Photo{FileName: "cat.png", Data: []byte{0x89, 'P', 'N', 'G'}},
		Confirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestSuggestionShapes(t *testing.T) {
	bodies := map[string]string{
		"suggestions": `{"data":{"suggestions":["кошка","котёнок"]}}`,
		"keywords":    `{"keywords":["кошка","котёнок"]}`,
		"kinds":       `{"kinds":["кошка","котёнок"]}`,
		"bare":        `["кошка","котёнок"]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "ко", r.URL.Query().Get("query"))
				writeBody(w, http.StatusOK, body)
			})
			got, err := c.Suggestions(context.Background(), "ко")
			require.NoError(t, err)
			assert.Equal(t, []string{"кошка", "котёнок"}, got)
		})
	}
}
