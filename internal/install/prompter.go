package install

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	confirmationPromptTemplateConstant = "%s [y/N]: "
	affirmativeShortAnswerConstant     = "y"
	affirmativeLongAnswerConstant      = "yes"
)

// ConfirmationPrompter asks the operator a yes or no question.
type ConfirmationPrompter interface {
	Confirm(promptMessage string) (bool, error)
}

// IOConfirmationPrompter reads confirmations from an input stream.
type IOConfirmationPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOConfirmationPrompter builds a prompter over the provided streams.
func NewIOConfirmationPrompter(reader io.Reader, writer io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(reader), writer: writer}
}

// Confirm prints the prompt and interprets y or yes as agreement.
func (prompter *IOConfirmationPrompter) Confirm(promptMessage string) (bool, error) {
	fmt.Fprintf(prompter.writer, confirmationPromptTemplateConstant, promptMessage)
	answerLine, readError := prompter.reader.ReadString('\n')
	if readError != nil && !errors.Is(readError, io.EOF) {
		return false, readError
	}
	normalizedAnswer := strings.ToLower(strings.TrimSpace(answerLine))
	return normalizedAnswer == affirmativeShortAnswerConstant || normalizedAnswer == affirmativeLongAnswerConstant, nil
}
