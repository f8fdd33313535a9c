package model

import "testing"

func TestBlockType_IsKnown(t *testing.T) {
	tests := []struct {
		blockType BlockType
		expected  bool
	}{
		{BlockText, true},
		{BlockImage, true},
		{BlockVideo, true},
		{BlockType("audio"), false},
		{BlockType(""), false},
	}

	for _, test := range tests {
		result := test.blockType.IsKnown()
		if result != test.expected {
			t.Errorf("BlockType(%s).IsKnown() = %v, expected %v", test.blockType, result, test.expected)
		}
	}
}

func TestBlockType_IsMedia(t *testing.T) {
	tests := []struct {
		blockType BlockType
		expected  bool
	}{
		{BlockText, false},
		{BlockImage, true},
		{BlockVideo, true},
		{BlockType("gallery"), false},
	}

	for _, test := range tests {
		result := test.blockType.IsMedia()
		if result != test.expected {
			t.Errorf("BlockType(%s).IsMedia() = %v, expected %v", test.blockType, result, test.expected)
		}
	}
}

func TestAudioState_IsStopped(t *testing.T) {
	tests := []struct {
		state    AudioState
		expected bool
	}{
		{AudioPlaying, false},
		{AudioPaused, true},
		{AudioEnded, true},
	}

	for _, test := range tests {
		result := test.state.IsStopped()
		if result != test.expected {
			t.Errorf("AudioState(%s).IsStopped() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSide_String(t *testing.T) {
	if SideRight.String() != "right" {
		t.Errorf("Side.String() = %s, expected right", SideRight.String())
	}
}
