package services

import (
	"context"

	"github.com/kenjikellens/ivids-core/internal/models"
	"github.com/stretchr/testify/mock"
)

type (
	MockReleaseFeed struct {
		mock.Mock
	}

	MockInstaller struct {
		mock.Mock
	}

	MockNetworkProbe struct {
		mock.Mock
	}

	MockDownloader struct {
		mock.Mock
	}
)

func (m *MockReleaseFeed) ListReleases(ctx context.Context) ([]models.ReleaseInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReleaseInfo), args.Error(1)
}

func (m *MockReleaseFeed) ListContents(ctx context.Context) ([]models.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Asset), args.Error(1)
}

func (m *MockInstaller) Install(ctx context.Context, artifactPath string) error {
	args := m.Called(ctx, artifactPath)
	return args.Error(0)
}

func (m *MockNetworkProbe) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockDownloader) Download(ctx context.Context, rawURL, dest string, onProgress ProgressFunc) (string, error) {
	args := m.Called(ctx, rawURL, dest, onProgress)
	return args.String(0), args.Error(1)
}
