// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"fmt"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/lumina-api/internal/clients/narrative"
	narrativemock "github.com/KirkDiggler/lumina-api/internal/clients/narrative/mock"
	"github.com/KirkDiggler/lumina-api/internal/entities/transformation"
)

// ExpectCard sets up one GenerateCard call for square that returns card and
// reports the input it received on got when got is non-nil.
func ExpectCard(
	mockClient *narrativemock.MockClient,
	square transformation.SquareType,
	card *transformation.Card,
	got chan<- *narrative.GenerateCardInput,
) *gomock.Call {
	return mockClient.EXPECT().
		GenerateCard(gomock.Any(), cardFor{square: square}).
		DoAndReturn(func(_ context.Context, input *narrative.GenerateCardInput) (*narrative.GenerateCardOutput, error) {
			if got != nil {
				got <- input
			}
			return &narrative.GenerateCardOutput{Card: card}, nil
		})
}

// ExpectCardError sets up one GenerateCard call that fails with err
func ExpectCardError(mockClient *narrativemock.MockClient, err error) *gomock.Call {
	return mockClient.EXPECT().
		GenerateCard(gomock.Any(), gomock.Any()).
		Return(nil, err)
}

// ExpectGraduationMessage sets up one GenerateGraduationMessage call for the
// completed level.
func ExpectGraduationMessage(
	mockClient *narrativemock.MockClient,
	intention string,
	level transformation.Level,
	message string,
) *gomock.Call {
	return mockClient.EXPECT().
		GenerateGraduationMessage(gomock.Any(), &narrative.GenerateGraduationMessageInput{
			Intention: intention,
			Level:     level,
		}).
		Return(&narrative.GenerateGraduationMessageOutput{Message: message}, nil)
}

// cardFor matches card requests for one square type
type cardFor struct {
	square transformation.SquareType
}

func (m cardFor) Matches(x any) bool {
	input, ok := x.(*narrative.GenerateCardInput)
	return ok && input.Square == m.square
}

func (m cardFor) String() string {
	return fmt.Sprintf("card request for square %s", m.square)
}
