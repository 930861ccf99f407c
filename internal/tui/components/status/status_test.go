package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLeftContent(t *testing.T) {
	c := New()
	c.SetCount(1234)
	require.Equal(t, "1,234 indexed", c.LeftContent())

	c.SetActivity("⣾", "00:03")
	c.SetProgress(&Progress{Index: 2, Total: 12, Path: "/photos/cat.jpg", Size: 2_500_000})
	require.Equal(t, "1,234 indexed │ ⣾ 00:03 │ 3/12 cat.jpg (2.5 MB)", c.LeftContent())

	c.SetActivity("", "")
	c.SetProgress(nil)
	require.Equal(t, "1,234 indexed", c.LeftContent())
}

func TestMessageClearsOnlyItsOwnTick(t *testing.T) {
	c := New()
	c.ShowInfo("first")
	first, ok := c.Message()
	require.True(t, ok)

	time.Sleep(time.Millisecond)
	c.ShowError("second")

	c.Update(clearMessageMsg{timestamp: first.Timestamp})
	msg, ok := c.Message()
	require.True(t, ok)
	require.Equal(t, "second", msg.Content)
	require.Equal(t, Error, msg.Type)

	c.Update(clearMessageMsg{timestamp: msg.Timestamp})
	_, ok = c.Message()
	require.False(t, ok)
}

func TestView(t *testing.T) {
	c := New()
	require.Empty(t, c.View())

	c.SetSize(60, 1)
	c.SetCount(3)
	c.ShowSuccess("scan complete")
	view := c.View()
	require.Contains(t, view, "3 indexed")
	require.Contains(t, view, "scan complete")
}

func TestParseMessageType(t *testing.T) {
	require.Equal(t, Warning, ParseMessageType("warning"))
	require.Equal(t, Error, ParseMessageType("error"))
	require.Equal(t, Success, ParseMessageType("success"))
	require.Equal(t, Info, ParseMessageType("whatever"))
}
