package xgp

// GameProfile describes where a game keeps its console-format save store
// and which files of a desktop save constitute a full import.
type GameProfile struct {
	// Name is the human-readable game name.
	Name string

	// PackageID is the installed package directory name under the
	// platform's Packages root, e.g. "PocketpairInc.Palworld_ad4psfrxyesvt".
	PackageID string

	// WGSFolder is the slash-separated path of the save-store area inside
	// the package directory.
	WGSFolder string

	// StorePattern is a regular expression matching valid store directory
	// names inside the WGS folder.
	StorePattern string

	// WorldFiles are the fixed per-world save files, imported when present
	// at the source, in this order.
	WorldFiles []string

	// PlayersDir is the source subdirectory holding per-player save files.
	PlayersDir string

	// Processes are executable names that must not be running during an
	// import.
	Processes []string
}
