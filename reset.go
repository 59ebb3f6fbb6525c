package main

import "log"

const resetIcon = `<svg fill="#000000" xmlns="http://www.w3.org/2000/svg" width="22px" height="22px" viewBox="0 -10 100 100"><path d="M84.539,21.586c-0.007-0.562-0.321-1.083-0.825-1.337c-0.503-0.258-1.107-0.212-1.568,0.115l-5.944,4.261l-0.468,0.337c-6.405-6.392-15.196-10.389-24.937-10.389c-19.535,0-35.427,15.894-35.427,35.428s15.893,35.428,35.427,35.428c11.782,0,22.764-5.838,29.374-15.618c0.263-0.392,0.362-0.867,0.272-1.328c-0.09-0.461-0.357-0.871-0.747-1.134l-8.863-6.151c-0.87-0.576-2.043-0.355-2.628,0.512c-3.918,5.792-10.41,9.25-17.375,9.25c-11.558,0-20.962-9.402-20.962-20.957s9.404-20.957,20.962-20.957c4.878,0,9.352,1.696,12.914,4.5l-1.001,0.72l-5.948,4.26c-0.455,0.328-0.696,0.89-0.611,1.448c0.081,0.558,0.47,1.028,1.008,1.208l25.446,8.669c0.461,0.161,0.966,0.083,1.368-0.203c0.399-0.29,0.629-0.747,0.627-1.231L84.539,21.586z"/></svg>`

// ResetControl restores the anchor view. It is enabled exactly when the
// current zoom differs from the anchor zoom.
type ResetControl struct {
	engine MapEngine
	anchor ViewState
	button Button
}

func attachResetControl(engine MapEngine, anchor ViewState) *ResetControl {
	rc := &ResetControl{engine: engine, anchor: anchor}
	rc.button = engine.AddButton(ButtonSpec{
		ID:      "reset",
		Title:   "Reset to initial view",
		Icon:    resetIcon,
		OnClick: rc.Activate,
	})
	engine.OnZoomEnd(rc.onZoom)
	rc.onZoom(engine.Zoom())
	return rc
}

func (rc *ResetControl) onZoom(zoom int) {
	if zoom == rc.anchor.Zoom {
		rc.button.Disable()
	} else {
		rc.button.Enable()
	}
}

// Activate does nothing while the control is disabled.
func (rc *ResetControl) Activate() {
	if !rc.button.Enabled() {
		return
	}
	log.Printf("Resetting view to zoom %d at %s", rc.anchor.Zoom, formatLatLon(rc.anchor.Center.Lat(), rc.anchor.Center.Lon()))
	rc.engine.SetView(rc.anchor.Center, rc.anchor.Zoom)
}

func (rc *ResetControl) Enabled() bool { return rc.button.Enabled() }
