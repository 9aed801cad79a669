package screen

// State is what the profile screen renders. An empty AvatarURI means the
// placeholder avatar is shown.
type State struct {
	HasProfile bool
	AvatarURI  string
	Caption    string
	PickerOpen bool

	resetEnabled bool
}

// CaptionEditable reports whether the caption input is shown.
func (s State) CaptionEditable() bool {
	return !s.HasProfile
}

// ShowSave reports whether the save button is shown.
func (s State) ShowSave() bool {
	return !s.HasProfile
}

// ShowReset reports whether the reset button is shown.
func (s State) ShowReset() bool {
	return s.HasProfile && s.resetEnabled
}

// HasAvatar reports whether an image other than the placeholder is set.
func (s State) HasAvatar() bool {
	return s.AvatarURI != ""
}
