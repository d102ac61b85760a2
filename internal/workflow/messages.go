package workflow

// Log panel text. Remote log lines are relayed verbatim; these are the local ones.
const (
	msgFetchStart      = "📜 Speak, friend, and enter... Fetching characters, quotes and movies"
	msgFetchHint       = "💡 Select any character to see their full details and quotes!"
	msgTruncatedFmt    = "⚠️ Warning: Received %d characters, limiting to %d"
	msgStaleFetch      = "⏳ Ignored a fetch response that arrived after the preview was discarded"
	msgNetworkErrorFmt = "🔥 Network error: %v"
	msgErrorFmt        = "🔥 %s"
	msgUnexpected      = "An unexpected error occurred. Please retry the operation."

	msgCommitStartFmt       = "🌋 The fires of Mount Doom are lit! Sending %d characters to the store..."
	msgTooManyFmt           = "🔥 Too many characters: %d exceeds limit of %d"
	msgEmptyDataset         = "🔥 Character list is empty"
	msgCommitDone           = "✨ You bow to no one. Ingestion complete!"
	msgSendCharactersFailed = "Failed to send data to the store"

	msgNoQuotes         = "🔥 No quotes found in character data"
	msgQuotesStartFmt   = "📜 Inscribing %d quotes into the archives..."
	msgQuotesDone       = "✨ The ancient words have been preserved!"
	msgSendQuotesFailed = "Failed to send quotes to the store"

	msgCancelled = "🤚 The ring remains. (Ingestion cancelled)"

	msgWipeDeclined = "🤚 The ring remains. (Deletion cancelled)"
	msgWipeStart    = "🔥 The fires are lit! Beginning the great purge..."
	msgWipeDone     = "✨ It is done. The age of LOTR data is over."
	msgWipeFailed   = "Failed to wipe the store"

	wipeConfirmTitle  = "Cast it into the fire? Destroy it!"
	wipeConfirmPrompt = "This will delete all LOTR character data from the store.\n\nAre you sure?"
)
