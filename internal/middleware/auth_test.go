package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/errorspkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/randompkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/tokenpkg"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestAuthMiddleware(t *testing.T) {
	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	owner := []string{domain.RoleCardOwner}

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(auth *MockAuthenticator)
		wantStatusCode int
		wantError      string
		wantPrincipal  string
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "InvalidAuthorizationHeader",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "", "user", owner, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "UnsupportedAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "unsupported", "user", owner, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrUnsupportedAuthType.Error(),
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, "user", owner, -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "BearerOK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, "user", owner, time.Minute)
			},
			wantStatusCode: http.StatusOK,
			wantPrincipal:  "user",
		},
		{
			name: "BasicOK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				r.SetBasicAuth("lemuk", "lemuk123")
				return nil
			},
			buildStubs: func(auth *MockAuthenticator) {
				auth.EXPECT().
					Authenticate(gomock.Any(), gomock.Eq("lemuk"), gomock.Eq("lemuk123")).
					Times(1).
					Return(domain.Principal{Username: "lemuk", Roles: owner}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantPrincipal:  "lemuk",
		},
		{
			name: "BasicMalformed",
			setupAuth: func(t *testing.T, r *http.Request) error {
				r.Header.Set(AuthHeaderKey, "Basic !!!not-base64")
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "BasicWrongPassword",
			setupAuth: func(t *testing.T, r *http.Request) error {
				r.SetBasicAuth("lemuk", "BAD-PASSWORD")
				return nil
			},
			buildStubs: func(auth *MockAuthenticator) {
				auth.EXPECT().
					Authenticate(gomock.Any(), gomock.Eq("lemuk"), gomock.Eq("BAD-PASSWORD")).
					Times(1).
					Return(domain.Principal{}, domain.ErrWrongPassword)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadCredentials.Error(),
		},
		{
			name: "BasicUnknownUser",
			setupAuth: func(t *testing.T, r *http.Request) error {
				r.SetBasicAuth("BAD-USER", "lemuk123")
				return nil
			},
			buildStubs: func(auth *MockAuthenticator) {
				auth.EXPECT().
					Authenticate(gomock.Any(), gomock.Eq("BAD-USER"), gomock.Eq("lemuk123")).
					Times(1).
					Return(domain.Principal{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadCredentials.Error(),
		},
		{
			name: "BasicDirectoryDown",
			setupAuth: func(t *testing.T, r *http.Request) error {
				r.SetBasicAuth("lemuk", "lemuk123")
				return nil
			},
			buildStubs: func(auth *MockAuthenticator) {
				auth.EXPECT().
					Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Principal{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			auth := NewMockAuthenticator(ctrl)

			if tc.buildStubs != nil {
				tc.buildStubs(auth)
			}

			server := gin.New()

			authPath := "/auth"
			handler := func(gctx *gin.Context) {
				p, _ := PrincipalFrom(gctx)
				gctx.JSON(http.StatusOK, web.Response{Data: p.Username})
			}
			server.GET(authPath, AuthMiddleware(auth, tokenMaker), handler)

			recorder := httptest.NewRecorder()
			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			if err != nil {
				t.Fatalf("http.NewRequest returned error: %v", err)
			}

			if err = tc.setupAuth(t, request); err != nil {
				t.Fatalf("tc.setupAuth(t, %v) returned error: %v", request, err)
			}

			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, tc.wantStatusCode = %v, want equal",
					recorder.Code, tc.wantStatusCode)
			}

			if recorder.Code == http.StatusUnauthorized {
				if got := recorder.Header().Get("WWW-Authenticate"); got != Challenge {
					t.Errorf("WWW-Authenticate = %q, want %q", got, Challenge)
				}
			}

			got := web.Response{}
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if got.Error != tc.wantError {
				t.Errorf("got.Error = %v, tc.wantError = %v, want equal", got.Error, tc.wantError)
			}

			if tc.wantPrincipal != "" && got.Data != tc.wantPrincipal {
				t.Errorf("principal = %v, want %v", got.Data, tc.wantPrincipal)
			}
		})
	}
}

func TestAuthMiddlewareDisabledSchemes(t *testing.T) {
	t.Parallel()

	server := gin.New()
	server.GET("/auth", AuthMiddleware(nil, nil), func(gctx *gin.Context) {
		gctx.Status(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/auth", nil)
	request.SetBasicAuth("lemuk", "lemuk123")

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("recorder.Code = %v, want %v", recorder.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		principal      *domain.Principal
		wantStatusCode int
		wantError      string
	}{
		{
			name:           "HasRole",
			principal:      &domain.Principal{Username: "lemuk", Roles: []string{domain.RoleCardOwner}},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "MissingRole",
			principal:      &domain.Principal{Username: "unauthorized-user", Roles: []string{"NON-OWNER"}},
			wantStatusCode: http.StatusForbidden,
			wantError:      ErrAccessDenied.Error(),
		},
		{
			name:           "NotAuthenticated",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrAuthHeaderNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := gin.New()
			server.GET("/cashcards",
				func(gctx *gin.Context) {
					if tc.principal != nil {
						gctx.Set(AuthPrincipalKey, *tc.principal)
					}
				},
				RequireRole(domain.RoleCardOwner),
				func(gctx *gin.Context) {
					gctx.JSON(http.StatusOK, web.Response{})
				},
			)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/cashcards", nil))

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, want %v", recorder.Code, tc.wantStatusCode)
			}

			got := web.Response{}
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if got.Error != tc.wantError {
				t.Errorf("got.Error = %v, want %v", got.Error, tc.wantError)
			}
		})
	}
}
