package domain

// SubtitleOutcomeKind identifies which subtitle resolution rule produced a result
type SubtitleOutcomeKind string

const (
	SubtitleManual          SubtitleOutcomeKind = "manual"           // manual subtitle file content
	SubtitleManualMissing   SubtitleOutcomeKind = "manual_missing"   // reported but not on disk
	SubtitleNotFound        SubtitleOutcomeKind = "not_found"        // reported without a file path
	SubtitleAutomatic       SubtitleOutcomeKind = "automatic"        // fetched auto-caption text
	SubtitleAutomaticFailed SubtitleOutcomeKind = "automatic_failed" // auto-caption fetch returned non-200
	SubtitleAutomaticNoURL  SubtitleOutcomeKind = "automatic_no_url" // english auto-caption without a URL
	SubtitleNoEnglishAuto   SubtitleOutcomeKind = "no_english_auto"  // no english auto-caption language
)

// Messages substituted for subtitle content when no text could be obtained
const (
	MsgSubtitlesMissingOnDisk = "Subtitles not found, but video downloaded."
	MsgAutoCaptionFetchFailed = "Failed to download auto-generated subtitles."
	MsgAutoCaptionNoURL       = "English auto-captions have no downloadable URL."
	MsgNoEnglishAutoCaptions  = "No English auto-captions available."
)

// SubtitleOutcome is the single subtitle result chosen for a download
type SubtitleOutcome struct {
	Kind SubtitleOutcomeKind
	Text string
}

// HasContent reports whether Text holds real subtitle content
func (o *SubtitleOutcome) HasContent() bool {
	return o.Kind == SubtitleManual || o.Kind == SubtitleAutomatic
}

// ManualSubtitle returns an outcome for a manual subtitle file's content
func ManualSubtitle(text string) *SubtitleOutcome {
	return &SubtitleOutcome{Kind: SubtitleManual, Text: text}
}

// AutomaticSubtitle returns an outcome for fetched auto-caption text
func AutomaticSubtitle(text string) *SubtitleOutcome {
	return &SubtitleOutcome{Kind: SubtitleAutomatic, Text: text}
}

// SubtitleNotice returns an outcome carrying one of the fixed notices
func SubtitleNotice(kind SubtitleOutcomeKind) *SubtitleOutcome {
	var text string
	switch kind {
	case SubtitleManualMissing:
		text = MsgSubtitlesMissingOnDisk
	case SubtitleAutomaticFailed:
		text = MsgAutoCaptionFetchFailed
	case SubtitleAutomaticNoURL:
		text = MsgAutoCaptionNoURL
	case SubtitleNoEnglishAuto:
		text = MsgNoEnglishAutoCaptions
	}
	return &SubtitleOutcome{Kind: kind, Text: text}
}
