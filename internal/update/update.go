// Package update checks GitHub Releases for newer ulauncher builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner = "cizzoo"
	repoName  = "Ulauncher"

	checksumFile = "checksums.txt"
)

// ReleasesURL is where users can download releases manually.
const ReleasesURL = "https://github.com/" + repoOwner + "/" + repoName + "/releases"

// ErrDevVersion is returned when trying to update a development build.
var ErrDevVersion = errors.New("cannot update development builds")

// Release describes an available update.
type Release struct {
	Version     string
	ReleaseDate string
	Notes       string
	AssetName   string

	release *selfupdate.Release
}

// IsDevVersion reports whether v is not a released version.
func IsDevVersion(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "dev" || v == "(devel)"
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: checksumFile},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return updater, nil
}

// CheckForUpdate returns the latest release if it is newer than
// currentVersion, or nil when already up to date.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, error) {
	if IsDevVersion(currentVersion) {
		return nil, ErrDevVersion
	}

	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found || !latest.GreaterThan(currentVersion) {
		return nil, nil
	}

	rel := &Release{
		Version:   latest.Version(),
		Notes:     latest.ReleaseNotes,
		AssetName: latest.AssetName,
		release:   latest,
	}
	if !latest.PublishedAt.IsZero() {
		rel.ReleaseDate = latest.PublishedAt.Format("2006-01-02")
	}
	return rel, nil
}

// Apply downloads rel and replaces the current executable with it.
func Apply(ctx context.Context, rel *Release) error {
	if rel == nil || rel.release == nil {
		return errors.New("no release to apply")
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, rel.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	return nil
}

// PermissionHint returns the advice shown when replacing the binary is denied.
func PermissionHint() string {
	if runtime.GOOS == "windows" {
		return "Run as Administrator"
	}
	return "sudo ulauncher update"
}
