package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/config"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "shareit.db")
	backupDir := filepath.Join(tempDir, "backups")

	logger := zerolog.Nop()
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	user := &models.User{Name: "Backup User", Email: "backup@example.com"}
	require.NoError(t, db.CreateUser(context.Background(), user))

	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	err = svc.PerformBackup()
	require.NoError(t, err)

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// The backup is a valid database holding the same data
	backupDB, err := NewDB(filepath.Join(backupDir, files[0].Name()), &logger)
	require.NoError(t, err)
	defer backupDB.Close()

	users, err := backupDB.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCleanupOldBackups(t *testing.T) {
	tempDir := t.TempDir()

	oldFile := filepath.Join(tempDir, "backup_old.db")
	require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0o644))
	oldTime := time.Now().AddDate(0, 0, -10)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	freshFile := filepath.Join(tempDir, "backup_fresh.db")
	require.NoError(t, os.WriteFile(freshFile, []byte("fresh"), 0o644))

	logger := zerolog.Nop()
	svc := NewBackupService("", config.BackupConfig{
		Enabled:       true,
		RetentionDays: 7,
		StoragePath:   tempDir,
	}, &logger)

	svc.CleanupOldBackups()

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, freshFile)
}
