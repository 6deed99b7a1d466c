// Package app owns the window and the frame loop. Workers (folder
// scanner, session store, thumbnail loader, folder watcher) report over
// channels that are drained at the start of each frame, so every model
// mutation happens on the frame goroutine.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/foldergrid/internal/config"
	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/folders"
	"github.com/justyntemme/foldergrid/internal/fs"
	"github.com/justyntemme/foldergrid/internal/platform"
	"github.com/justyntemme/foldergrid/internal/render"
	"github.com/justyntemme/foldergrid/internal/store"
	"github.com/justyntemme/foldergrid/internal/thumb"
	"github.com/justyntemme/foldergrid/internal/ui"
)

// settingLastList remembers the last saved or loaded folder list.
const settingLastList = "last_list_file"

// pickResult carries a native dialog's answer back to the frame loop.
type pickResult struct {
	action ui.UIAction
	paths  []string
	err    error
}

type Orchestrator struct {
	window   *app.Window
	cfg      *config.Manager
	fs       *fs.System
	store    *store.DB
	watcher  *FolderWatcher
	ui       *ui.Renderer
	explorer *ui.Explorer
	folders  *folders.List
	state    ui.State
	debug    bool

	scanGen  int64
	mergeGen int64 // scan whose result keeps the current order
	lastList string
	picks    chan pickResult

	// restoring is set while the startup folder fetch is outstanding.
	// Other FetchFolders responses only echo a save.
	restoring bool
}

func NewOrchestrator(cfg *config.Manager, debugMode bool) (*Orchestrator, error) {
	c := cfg.Get()
	o := &Orchestrator{
		window:  new(app.Window),
		cfg:     cfg,
		fs:      fs.NewSystem(),
		store:   store.NewDB(),
		folders: folders.NewList(),
		debug:   debugMode,
		picks:   make(chan pickResult, 1),
	}

	measurer, err := render.NewFontMeasurer(float64(c.UI.LabelTextSize))
	if err != nil {
		return nil, fmt.Errorf("label font: %w", err)
	}
	var cache *thumb.Cache
	if c.Thumbnails.CacheEntries > 0 {
		cache = thumb.NewCache(c.Thumbnails.CacheEntries)
	}
	o.explorer = ui.NewExplorer(ui.ExplorerOptions{
		Generator: thumb.NewGenerator(c.UI.IconSize, cache),
		Delegate:  render.NewDelegate(c.UI.IconSize, measurer),
		Spacing:   c.UI.Spacing,
		Async:     c.Thumbnails.Async,
		Workers:   c.Thumbnails.Workers,
		Notify:    o.window.Invalidate,
	})

	o.ui = ui.NewRenderer(o.explorer)
	o.ui.SetHotkeys(c.Hotkeys)
	o.ui.SetDarkMode(cfg.IsDarkMode())
	if perr := cfg.ParseError(); perr != nil {
		o.ui.SetConfigError(perr.Error())
	}
	o.fs.Notify = o.window.Invalidate
	o.store.Notify = o.window.Invalidate
	return o, nil
}

func (o *Orchestrator) Run(startFolders []string) error {
	if o.debug {
		log.Println("Starting foldergrid in DEBUG mode")
	}
	c := o.cfg.Get()

	// Init DB
	configDir, _ := os.UserConfigDir()
	if err := o.store.Open(filepath.Join(configDir, "foldergrid", "foldergrid.db")); err != nil {
		log.Printf("Failed to open DB: %v", err)
	}

	// Start workers
	go o.fs.Start()
	go o.store.Start()
	defer o.shutdown()

	if c.Watch.Enabled {
		w, err := NewFolderWatcher(c.Watch.Debounce(), o.window.Invalidate)
		if err != nil {
			log.Printf("Folder watcher unavailable: %v", err)
		} else {
			o.watcher = w
		}
	}

	o.store.RequestChan <- store.Request{Op: store.FetchSettings}
	if len(startFolders) > 0 {
		o.addFolders(startFolders)
	} else if c.Folders.RestoreOnStart {
		o.restoring = true
		o.store.RequestChan <- store.Request{Op: store.FetchFolders}
	}

	o.window.Option(app.Title("Folder Grid"), app.Size(unit.Dp(1100), unit.Dp(720)))

	// Event loop
	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			o.drainWorkers()
			o.explorer.AdoptPreviews()

			gtx := app.NewContext(&ops, e)
			evt := o.ui.Layout(gtx, &o.state)
			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) shutdown() {
	o.explorer.Close()
	if o.watcher != nil {
		o.watcher.Close()
	}
	close(o.fs.RequestChan)
	o.store.Close()
}

func (o *Orchestrator) watchChan() <-chan string {
	if o.watcher == nil {
		return nil
	}
	return o.watcher.Notify()
}

// drainWorkers applies every pending worker response without blocking.
func (o *Orchestrator) drainWorkers() {
	for {
		select {
		case resp := <-o.fs.ResponseChan:
			o.handleFSResponse(resp)
		case resp := <-o.store.ResponseChan:
			o.handleStoreResponse(resp)
		case dir := <-o.watchChan():
			debug.Log(debug.APP, "rescan after change in %s", dir)
			o.rescan(true)
		case res := <-o.picks:
			o.handlePick(res)
		default:
			return
		}
	}
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionNone:
		return

	case ui.ActionAddFolder:
		if evt.Path == "" {
			o.ui.ShowWarning("Type a folder path or use Select Folder")
			return
		}
		if o.addFolders([]string{evt.Path}) > 0 {
			o.ui.ClearFolderText()
		}

	case ui.ActionPickFolder:
		o.pickAsync(ui.ActionPickFolder, func() ([]string, error) {
			return platform.PickFolders("Select Folder")
		})

	case ui.ActionRemoveFolders:
		if o.folders.Remove(evt.Rows...) {
			o.foldersChanged()
		}

	case ui.ActionSaveFolders:
		if evt.Path != "" {
			o.saveList(evt.Path)
			return
		}
		suggested := filepath.Base(o.defaultListFile())
		o.pickAsync(ui.ActionSaveFolders, func() ([]string, error) {
			p, err := platform.PickSaveFile("Save Folder List", suggested)
			return nonEmpty(p), err
		})

	case ui.ActionLoadFolders:
		if evt.Path != "" {
			o.loadList(evt.Path)
			return
		}
		o.pickAsync(ui.ActionLoadFolders, func() ([]string, error) {
			p, err := platform.PickListFile("Load Folder List")
			return nonEmpty(p), err
		})

	case ui.ActionOpen:
		for _, p := range evt.Paths {
			if err := platform.Open(p); err != nil {
				log.Printf("Open %s: %v", p, err)
				o.ui.ShowError(fmt.Sprintf("Cannot open %s", filepath.Base(p)))
			}
		}

	case ui.ActionRescan:
		o.rescan(false)

	case ui.ActionToggleTheme:
		dark := !o.ui.DarkMode
		o.ui.SetDarkMode(dark)
		theme := "light"
		if dark {
			theme = "dark"
		}
		o.cfg.SetTheme(theme)
		if err := o.cfg.Save(); err != nil {
			log.Printf("Save config: %v", err)
		}
	}
	o.window.Invalidate()
}

func nonEmpty(p string) []string {
	if p == "" {
		return nil
	}
	return []string{p}
}

// pickAsync runs a blocking native dialog off the frame goroutine.
func (o *Orchestrator) pickAsync(action ui.UIAction, pick func() ([]string, error)) {
	go func() {
		paths, err := pick()
		o.picks <- pickResult{action: action, paths: paths, err: err}
		o.window.Invalidate()
	}()
}

func (o *Orchestrator) handlePick(res pickResult) {
	if errors.Is(res.err, platform.ErrNoDialog) {
		switch res.action {
		case ui.ActionSaveFolders:
			o.saveList(o.defaultListFile())
		case ui.ActionLoadFolders:
			o.loadList(o.defaultListFile())
		default:
			o.ui.ShowWarning("No folder chooser available; type a path instead")
		}
		return
	}
	if res.err != nil {
		log.Printf("File dialog: %v", res.err)
		o.ui.ShowError("File dialog failed")
		return
	}
	if len(res.paths) == 0 {
		return // cancelled
	}

	switch res.action {
	case ui.ActionPickFolder:
		o.addFolders(res.paths)
	case ui.ActionSaveFolders:
		o.saveList(res.paths[0])
	case ui.ActionLoadFolders:
		o.loadList(res.paths[0])
	}
}

// addFolders adds existing directories to the folder list and returns
// how many were new.
func (o *Orchestrator) addFolders(paths []string) int {
	added := 0
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			o.ui.ShowError(fmt.Sprintf("Not a folder: %s", p))
			continue
		}
		if o.folders.Add(abs) {
			added++
		}
	}
	if added > 0 {
		o.foldersChanged()
	}
	return added
}

// foldersChanged persists the list, updates the watch set and rebuilds
// the grid in scan order.
func (o *Orchestrator) foldersChanged() {
	paths := o.folders.Paths()
	o.state.Folders = paths
	o.store.RequestChan <- store.Request{Op: store.SaveFolders, Folders: paths}
	if o.watcher != nil {
		o.watcher.Sync(paths)
	}
	o.rescan(false)
}

// rescan asks the scanner for the current folders. With keepOrder the
// result is merged into the current order instead of replacing it.
func (o *Orchestrator) rescan(keepOrder bool) {
	o.scanGen++
	if keepOrder {
		o.mergeGen = o.scanGen
	}
	o.state.Scanning = true
	o.fs.Submit(fs.Request{Op: fs.ScanFolders, Folders: o.folders.Paths(), Gen: o.scanGen})
}

func (o *Orchestrator) handleFSResponse(resp fs.Response) {
	if resp.Gen != o.scanGen || resp.Cancelled {
		debug.Log(debug.APP, "dropping stale scan gen %d (current %d)", resp.Gen, o.scanGen)
		return
	}
	o.state.Scanning = false
	o.state.Skipped = len(resp.Skipped)
	if resp.Err != nil {
		log.Printf("FS Error: %v", resp.Err)
		o.ui.ShowError("Scan failed")
		return
	}
	for _, s := range resp.Skipped {
		log.Printf("Cannot read folder %s", s)
	}

	paths := resp.Paths()
	if resp.Gen == o.mergeGen {
		paths = mergeOrder(o.currentPaths(), paths)
	}
	o.explorer.SetFileList(paths)
}

func (o *Orchestrator) currentPaths() []string {
	entries := o.explorer.Collection.Entries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path()
	}
	return paths
}

// mergeOrder keeps the paths of current that are still in scanned, in
// their current order, followed by the newly scanned ones in scan order.
func mergeOrder(current, scanned []string) []string {
	remaining := make(map[string]int, len(scanned))
	for _, p := range scanned {
		remaining[p]++
	}
	out := make([]string, 0, len(scanned))
	for _, p := range current {
		if remaining[p] > 0 {
			remaining[p]--
			out = append(out, p)
		}
	}
	for _, p := range scanned {
		if remaining[p] > 0 {
			remaining[p]--
			out = append(out, p)
		}
	}
	return out
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Op == store.FetchFolders {
		if !o.restoring {
			return
		}
		o.restoring = false
	}
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return
	}

	switch resp.Op {
	case store.FetchFolders:
		if o.folders.Merge(resp.Folders) > 0 {
			debug.Log(debug.APP, "restored %d folders", o.folders.Len())
			o.state.Folders = o.folders.Paths()
			if o.watcher != nil {
				o.watcher.Sync(o.state.Folders)
			}
			o.rescan(false)
		}
	case store.FetchSettings:
		if v, ok := resp.Settings[settingLastList]; ok {
			o.lastList = v
		}
	}
}

func (o *Orchestrator) defaultListFile() string {
	if o.lastList != "" {
		return o.lastList
	}
	return o.cfg.Get().Folders.DefaultListFile
}

func (o *Orchestrator) rememberList(path string) {
	o.lastList = path
	o.store.RequestChan <- store.Request{Op: store.SaveSetting, Key: settingLastList, Value: path}
}

func (o *Orchestrator) saveList(name string) {
	path, err := o.folders.Save(name)
	if err != nil {
		log.Printf("Save folders: %v", err)
		o.ui.ShowError("Could not save the folder list")
		return
	}
	o.rememberList(path)
	o.ui.ShowSuccess(fmt.Sprintf("Saved %d folders to %s", o.folders.Len(), filepath.Base(path)))
}

func (o *Orchestrator) loadList(path string) {
	added, err := o.folders.Load(path)
	if err != nil {
		log.Printf("Load folders: %v", err)
		o.ui.ShowError("Could not load the folder list")
		return
	}
	o.rememberList(path)
	o.ui.ShowSuccess(fmt.Sprintf("Loaded %d new folders", added))
	if added > 0 {
		o.foldersChanged()
	}
}

func Main(cfg *config.Manager, debugMode bool, startFolders []string) {
	go func() {
		o, err := NewOrchestrator(cfg, debugMode)
		if err != nil {
			log.Fatal(err)
		}
		if err := o.Run(startFolders); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
