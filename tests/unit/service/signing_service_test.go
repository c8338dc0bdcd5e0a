package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notaryflow/internal/domain"
	"notaryflow/internal/service"
	"notaryflow/mocks"
)

func unsignedSubmission() *domain.SubmissionRecord {
	return &domain.SubmissionRecord{
		ID:              uuid.New(),
		ReferenceNumber: "NF-SIGNTEST01",
		DocumentType:    "affidavit",
		SigningOption:   domain.SigningOptionESign,
		SigningState:    domain.SigningStateUnsigned,
		Status:          domain.SubmissionStatusPending,
	}
}

func TestSigningService_Sign_Success(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)
	stamper.On("Stamp", mock.Anything, sub.ID).Return("https://cdn.example.com/stamped.pdf", nil)
	repo.On("UpdateSigning", mock.Anything, sub).Return(nil)

	signed, err := svc.Sign(context.Background(), sub.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/stamped.pdf", signed.ApprovedDocURL)
	assert.Equal(t, domain.SigningStateSigned, signed.SigningState)
	assert.Equal(t, domain.SubmissionStatusApproved, signed.Status)

	// The approval timestamp must resolve to a calendar date for retrieval.
	_, ok := signed.ApprovedAt.Date()
	assert.True(t, ok)

	repo.AssertExpectations(t)
	stamper.AssertExpectations(t)
}

func TestSigningService_Sign_AlreadySigned(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	sub.SigningState = domain.SigningStateSigned
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)

	_, err := svc.Sign(context.Background(), sub.ID)

	assert.ErrorIs(t, err, domain.ErrAlreadySigned)
	stamper.AssertNotCalled(t, "Stamp", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateSigning", mock.Anything, mock.Anything)
}

func TestSigningService_Sign_StampFailureLeavesRecordUntouched(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)
	stamper.On("Stamp", mock.Anything, sub.ID).Return("", domain.ErrCollaborator)

	_, err := svc.Sign(context.Background(), sub.ID)

	assert.ErrorIs(t, err, domain.ErrCollaborator)
	repo.AssertNotCalled(t, "UpdateSigning", mock.Anything, mock.Anything)
}

func TestSigningService_Sign_NotFound(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.Sign(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSigningService_Sign_UpdateFailure(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)
	stamper.On("Stamp", mock.Anything, sub.ID).Return("https://cdn.example.com/stamped.pdf", nil)
	repo.On("UpdateSigning", mock.Anything, sub).Return(errors.New("db down"))

	_, err := svc.Sign(context.Background(), sub.ID)
	assert.Error(t, err)
}

func TestSigningService_DocumentURL(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	sub.DocumentURL = "s3://bucket/original.pdf"
	sub.ApprovedDocURL = "s3://bucket/stamped.pdf"
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)

	url, err := svc.DocumentURL(context.Background(), sub.ID, domain.DocumentVersionOriginal)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/original.pdf", url)

	url, err = svc.DocumentURL(context.Background(), sub.ID, domain.DocumentVersionStamped)
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/stamped.pdf", url)

	_, err = svc.DocumentURL(context.Background(), sub.ID, domain.DocumentVersion("draft"))
	assert.ErrorIs(t, err, domain.ErrInvalidVersion)
}

func TestSigningService_DocumentURL_MissingArtifact(t *testing.T) {
	repo := new(mocks.MockSubmissionRepo)
	stamper := new(mocks.MockStampingClient)
	svc := service.NewSigningService(repo, stamper)

	sub := unsignedSubmission()
	repo.On("GetByID", mock.Anything, sub.ID).Return(sub, nil)

	_, err := svc.DocumentURL(context.Background(), sub.ID, domain.DocumentVersionStamped)
	assert.ErrorIs(t, err, domain.ErrNoDocumentURL)
}
