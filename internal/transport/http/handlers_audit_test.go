package httptransport

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"privacyguard/internal/audit"
	"privacyguard/internal/transport/http/mocks"
	dErrors "privacyguard/pkg/domain-errors"
	"privacyguard/pkg/platform/privacy"
	"privacyguard/pkg/testutil"
)

type AuditHandlerSuite struct {
	suite.Suite
}

func (s *AuditHandlerSuite) newHandler(t *testing.T) (*mocks.MockAuditor, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	mockAuditor := mocks.NewMockAuditor(ctrl)
	handler := NewAuditHandler(mockAuditor, logger)
	r := chi.NewRouter()
	handler.Register(r)
	return mockAuditor, r
}

func auditEvent(subjectHash, action string) audit.Event {
	return audit.Event{
		ID:        uuid.New(),
		Category:  audit.CategoryOperations,
		Timestamp: time.Now().UTC(),
		SubjectID: subjectHash,
		Action:    action,
	}
}

func (s *AuditHandlerSuite) TestHandler_ListBySubject() {
	s.T().Run("happy path - raw subject is hashed before lookup", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		subjectHash := privacy.HashSubjectID("alice@example.com")
		events := []audit.Event{
			auditEvent(subjectHash, string(audit.ActionRecordProcessed)),
			auditEvent(subjectHash, string(audit.ActionConsentRecorded)),
		}
		mockAuditor.EXPECT().List(gomock.Any(), subjectHash).Return(events, nil)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit?subject=alice@example.com", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[auditListResponse](t, rr)
		assert.Equal(t, 2, got.Count)
		require.Len(t, got.Events, 2)
		assert.Equal(t, subjectHash, got.Events[0].SubjectID)
	})

	s.T().Run("no events yields an empty list, not null", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit?subject=nobody", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.JSONEq(t, `{"events":[],"count":0}`, rr.Body.String())
	})

	s.T().Run("returns 400 when subject is missing", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.T().Run("returns 500 when the store fails", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit?subject=alice", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, string(dErrors.CodeInternal))
	})
}

func (s *AuditHandlerSuite) TestHandler_ListRecent() {
	s.T().Run("happy path - default limit applies", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		events := []audit.Event{auditEvent("hash", string(audit.ActionRecordProcessed))}
		mockAuditor.EXPECT().ListRecent(gomock.Any(), defaultAuditLimit).Return(events, nil)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/recent", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[auditListResponse](t, rr)
		assert.Equal(t, 1, got.Count)
	})

	s.T().Run("explicit limit is honored", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().ListRecent(gomock.Any(), 5).Return(nil, nil)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/recent?limit=5", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	s.T().Run("oversized limit is clamped", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().ListRecent(gomock.Any(), maxAuditLimit).Return(nil, nil)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/recent?limit=100000", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	s.T().Run("returns 400 for a non-numeric limit", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/recent?limit=lots", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.T().Run("returns 400 for a zero limit", func(t *testing.T) {
		mockAuditor, router := s.newHandler(t)
		mockAuditor.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewJSONRequest(t, http.MethodGet, "/audit/recent?limit=0", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func TestAuditHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuditHandlerSuite))
}
