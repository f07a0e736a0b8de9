package domain

type Response struct {
	ChatID           int64
	ReplyToMessageID int
	Text             string
	HTML             bool
	Keyboard         *Keyboard
}

type Keyboard struct {
	ButtonLabels   []string
	CallbackPrefix string
	ButtonsPerRow  int
}
