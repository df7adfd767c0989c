package xgp

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cashinmypocket/enhanced-palworld-xgp-import/internal/wgs"
)

// ImportService is the orchestration layer that coordinates across all
// components to perform high-level save-store operations needed by the CLI.
type ImportService struct {
	profile GameProfile
	storeRe *regexp.Regexp

	fsmgr  FilesystemManager
	backup Backupper
	guard  ProcessGuard
	ledger Ledger
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewImportService creates a new ImportService with the provided
// dependencies. The profile's store pattern is compiled once here.
func NewImportService(profile GameProfile, fsmgr FilesystemManager, backup Backupper, guard ProcessGuard, ledger Ledger, logger Logger, clock Clock, idgen IDGenerator) (*ImportService, error) {
	re, err := regexp.Compile(profile.StorePattern)
	if err != nil {
		return nil, fmt.Errorf("compiling store pattern %q: %w", profile.StorePattern, err)
	}
	return &ImportService{
		profile: profile,
		storeRe: re,
		fsmgr:   fsmgr,
		backup:  backup,
		guard:   guard,
		ledger:  ledger,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}, nil
}

// StoreInfo describes one candidate save-store directory.
type StoreInfo struct {
	Path    string
	ModTime time.Time
}

// FindStores enumerates candidate store directories under the game's
// package path, newest first. Multiple candidates usually mean multiple
// platform accounts have signed in; the caller picks one.
// packagesRoot is the platform's Packages directory.
func (s *ImportService) FindStores(packagesRoot string) ([]*StoreInfo, error) {
	pkgPath := filepath.Join(packagesRoot, s.profile.PackageID)
	if _, err := s.fsmgr.Resolve(pkgPath); err != nil {
		return nil, fmt.Errorf("package directory not found (is %s installed?): %w", s.profile.Name, err)
	}

	wgsDir, err := s.fsmgr.Resolve(filepath.Join(pkgPath, filepath.FromSlash(s.profile.WGSFolder)))
	if err != nil {
		// The store area appears only after the game ran once.
		return nil, nil
	}

	children, err := s.fsmgr.ListDir(wgsDir)
	if err != nil {
		return nil, fmt.Errorf("listing save-store area: %w", err)
	}

	var stores []*StoreInfo
	for _, child := range children {
		if !child.IsDir() || !s.storeRe.MatchString(child.Name()) {
			continue
		}
		stores = append(stores, &StoreInfo{Path: child.String(), ModTime: child.Info().ModTime()})
	}
	sort.SliceStable(stores, func(i, j int) bool { return stores[i].ModTime.After(stores[j].ModTime) })
	return stores, nil
}

// Inspect decodes and returns a store's container index for display.
func (s *ImportService) Inspect(storeDir string) (*wgs.ContainerIndex, error) {
	return wgs.ReadIndexFile(filepath.Join(storeDir, wgs.IndexFilename))
}

// ImportResult reports what an import did (or, in dry-run mode, would do).
type ImportResult struct {
	SaveName   string
	Containers []string
	BackupPath string
	DryRun     bool
}

// Import merges the desktop save at sourceDir into the store at storeDir.
//
// Steps: conflicting-process check, index decode, pre-mutation backup,
// container creation for every importable source file, merge, index rewrite,
// history record. In dry-run mode all reads happen but nothing is written.
// The index rewrite is not transactional: container directories written
// before a failure are unreferenced and harmless, and the backup is the
// recovery mechanism for a torn index write.
func (s *ImportService) Import(sourceDir, storeDir string, dryRun bool) (*ImportResult, error) {
	running, err := s.guard.Running()
	if err != nil {
		return nil, fmt.Errorf("checking for conflicting processes: %w", err)
	}
	if len(running) > 0 {
		return nil, fmt.Errorf("conflicting processes running: %s (close them and retry)", strings.Join(running, ", "))
	}

	source, err := s.fsmgr.Resolve(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("resolving source save: %w", err)
	}
	if !source.IsDir() {
		// The user pointed at a file inside the save; use its folder.
		source, err = s.fsmgr.Resolve(filepath.Dir(source.String()))
		if err != nil {
			return nil, fmt.Errorf("resolving source save folder: %w", err)
		}
	}
	saveName := source.Name()

	rec := &ImportRecord{
		SaveName:  saveName,
		Source:    source.String(),
		Store:     storeDir,
		DryRun:    dryRun,
		StartedAt: s.clock.Now(),
	}
	res, err := s.runImport(source, saveName, storeDir, dryRun)
	rec.Status = StatusSucceeded
	if err != nil {
		rec.Status = StatusFailed
	} else {
		rec.Containers = len(res.Containers)
	}
	rec.FinishedAt = s.clock.Now()
	if lerr := s.ledger.Record(rec); lerr != nil {
		s.logger.Error("recording import history", "error", lerr)
	}
	return res, err
}

func (s *ImportService) runImport(source *Path, saveName, storeDir string, dryRun bool) (*ImportResult, error) {
	s.logger.Info("importing save", "save", saveName, "source", source.String(), "store", storeDir)

	idx, err := s.Inspect(storeDir)
	if err != nil {
		return nil, fmt.Errorf("reading store index: %w", err)
	}

	prefix := saveName + "-"
	for _, c := range idx.Containers {
		if strings.HasPrefix(c.Name, prefix) {
			s.logger.Warn("save already present in store, entries will be replaced", "container", c.Name)
		}
	}

	result := &ImportResult{SaveName: saveName, DryRun: dryRun}
	if !dryRun {
		backupPath, err := s.backup.Backup(storeDir)
		if err != nil {
			return nil, fmt.Errorf("backing up store: %w", err)
		}
		result.BackupPath = backupPath
		s.logger.Info("store backed up", "path", backupPath)
	}

	batch, err := s.buildBatch(source, saveName, storeDir, dryRun)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("no importable save files found in %s", source.String())
	}
	for _, c := range batch {
		result.Containers = append(result.Containers, c.Name)
	}

	idx.Merge(batch, s.clock.Now())
	if dryRun {
		s.logger.Info("dry run: index rewrite skipped", "containers", len(batch))
		return result, nil
	}

	if err := idx.WriteFile(storeDir); err != nil {
		return nil, fmt.Errorf("rewriting store index: %w", err)
	}
	s.logger.Info("import complete", "containers", len(batch))
	return result, nil
}

// buildBatch creates one container per importable source file: the fixed
// world files first, each only when present, then per-player files in
// directory-listing order.
func (s *ImportService) buildBatch(source *Path, saveName, storeDir string, dryRun bool) ([]*wgs.Container, error) {
	var batch []*wgs.Container

	for _, wf := range s.profile.WorldFiles {
		p, err := s.fsmgr.Resolve(filepath.Join(source.String(), wf))
		if err != nil {
			s.logger.Warn("optional save file not found", "file", wf)
			continue
		}
		entry, err := s.createContainer(p, saveName+"-"+trimExt(wf), storeDir, dryRun)
		if err != nil {
			return nil, err
		}
		batch = append(batch, entry)
	}

	if s.profile.PlayersDir == "" {
		return batch, nil
	}
	playersDir, err := s.fsmgr.Resolve(filepath.Join(source.String(), s.profile.PlayersDir))
	if err != nil || !playersDir.IsDir() {
		return batch, nil
	}
	players, err := s.fsmgr.ListDir(playersDir)
	if err != nil {
		return nil, fmt.Errorf("listing players directory: %w", err)
	}
	for _, p := range players {
		if p.IsDir() || !strings.EqualFold(filepath.Ext(p.Name()), ".sav") {
			continue
		}
		name := saveName + "-Players-" + trimExt(p.Name())
		entry, err := s.createContainer(p, name, storeDir, dryRun)
		if err != nil {
			return nil, err
		}
		batch = append(batch, entry)
	}
	return batch, nil
}

// createContainer writes the physical container directory (manifest plus
// streamed content blob) for one source file and returns its catalog entry.
func (s *ImportService) createContainer(source *Path, containerName, storeDir string, dryRun bool) (*wgs.Container, error) {
	containerID := s.idgen.New()
	list := &wgs.ContainerFileList{
		Seq: 1,
		Files: []*wgs.ContainerFile{
			{Name: "Data", ID: s.idgen.New(), SourcePath: source.String()},
		},
	}

	dir := filepath.Join(storeDir, containerID.StorageName())
	if dryRun {
		s.logger.Info("dry run: would write container", "container", containerName, "dir", dir)
	} else {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating container directory: %w", err)
		}
		if err := list.Write(dir); err != nil {
			return nil, fmt.Errorf("writing container %q: %w", containerName, err)
		}
		s.logger.Info("container written", "container", containerName, "dir", dir)
	}

	info := source.Info()
	return wgs.NewContainer(containerName, "", 1, containerID, wgs.FileTimeOf(info.ModTime()), uint64(info.Size())), nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
