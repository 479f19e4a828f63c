package session_test

import (
	"github.com/KirkDiggler/deck-api/internal/clipboard"
	"github.com/KirkDiggler/deck-api/internal/entities/deck"
	"github.com/KirkDiggler/deck-api/internal/errors"
	"github.com/KirkDiggler/deck-api/internal/testutils"
)

func (s *SessionTestSuite) TestClipboardCopyPaste() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterStriker))
	s.Require().NoError(s.session.AddCharacter(s.ctx, 1, testutils.CharacterPlain))

	cb := &clipboard.Memory{}
	s.Require().NoError(s.session.CopyToClipboard(s.ctx, cb))

	other := s.newSession(nil)
	result := other.PasteFromClipboard(s.ctx, cb)
	s.Require().True(result.Success)
	s.Equal(s.session.Snapshot().CardIDs(), other.Snapshot().CardIDs())
}

func (s *SessionTestSuite) TestClipboardFailuresLeaveDeckUntouched() {
	s.Require().NoError(s.session.AddCharacter(s.ctx, 0, testutils.CharacterPlain))
	before := s.session.Snapshot()

	cb := &clipboard.Memory{Err: errors.Unavailable("permission denied")}

	err := s.session.CopyToClipboard(s.ctx, cb)
	s.True(errors.IsUnavailable(err))

	result := s.session.PasteFromClipboard(s.ctx, cb)
	s.False(result.Success)
	s.Equal(deck.MessageImportFailed, result.Message)

	s.Equal(before, s.session.Snapshot())
}
