package piecetable

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmpty(t *testing.T) {
	pt := New(nil)
	assert.Equal(t, "", string(pt.Text()))
	assert.Equal(t, 0, pt.DocLen())
	assert.Equal(t, 1, pt.LineCount())
	_, ok := pt.LineContent(1)
	assert.False(t, ok)
}

func TestNewRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "Lorem ipsum dolor sit amet", "a\nb\nc\n", "\n\n\n"} {
		pt := New([]byte(s))
		require.Equal(t, s, string(pt.Text()))
		require.Equal(t, len(s), pt.DocLen())
	}
}

func TestMiddleInsert(t *testing.T) {
	pt := New([]byte("This is  text"))
	require.NoError(t, pt.Insert(8, []byte("some")))
	assert.Equal(t, "This is some text", string(pt.Text()))
}

func TestMultiSpanAssembly(t *testing.T) {
	pt := New([]byte("ipsum sit amet"))
	require.NoError(t, pt.Insert(0, []byte("Lorem ")))
	require.NoError(t, pt.Insert(11, []byte("deletedtext")))
	require.NoError(t, pt.Insert(11, []byte(" dolor")))
	require.NoError(t, pt.Delete(17, 28))
	assert.Equal(t, "Lorem ipsum dolor sit amet", string(pt.Text()))
}

func TestLineQueryAcrossSpans(t *testing.T) {
	pt := New([]byte("Lorem ipsum dolor sit amet, consectetur adipiscing elit.\nPraesent ultricies lacus ut molestie dapibus."))
	pt.Append([]byte("\nNam diam lorem, efficitur nec mauris eget, ultrices molestie mi."))
	pt.Append([]byte("\nSed varius magna quis maximus mattis."))

	assert.Equal(t, 4, pt.LineCount())

	line1, ok := pt.LineContent(1)
	require.True(t, ok)
	assert.Equal(t, "Lorem ipsum dolor sit amet, consectetur adipiscing elit.", line1)

	line2, ok := pt.LineContent(2)
	require.True(t, ok)
	assert.Equal(t, "Praesent ultricies lacus ut molestie dapibus.", line2)

	line4, ok := pt.LineContent(4)
	require.True(t, ok)
	assert.Equal(t, "Sed varius magna quis maximus mattis.", line4)

	_, ok = pt.LineContent(5)
	assert.False(t, ok)
}

func TestLineQueryNewlineAtSpanStart(t *testing.T) {
	pt := New([]byte("A\n"))
	pt.Append([]byte("B"))

	assert.Equal(t, 2, pt.LineCount())
	l1, ok := pt.LineContent(1)
	require.True(t, ok)
	assert.Equal(t, "A", l1)
	l2, ok := pt.LineContent(2)
	require.True(t, ok)
	assert.Equal(t, "B", l2)
}

func TestDeleteStartEndMiddle(t *testing.T) {
	t.Run("start", func(t *testing.T) {
		pt := New([]byte("Lorem ipsum dolor sit amet"))
		require.NoError(t, pt.Delete(0, 6))
		assert.Equal(t, "ipsum dolor sit amet", string(pt.Text()))
	})
	t.Run("end", func(t *testing.T) {
		pt := New([]byte("Lorem ipsum dolor sit amet"))
		require.NoError(t, pt.Delete(21, 26))
		assert.Equal(t, "Lorem ipsum dolor sit", string(pt.Text()))
	})
	t.Run("middle", func(t *testing.T) {
		pt := New([]byte("Lorem ipsum dolor sit amet"))
		require.NoError(t, pt.Delete(9, 19))
		assert.Equal(t, "Lorem ipsit amet", string(pt.Text()))
	})
	t.Run("out of range end", func(t *testing.T) {
		pt := New([]byte("Lorem ipsum dolor sit amet"))
		err := pt.Delete(28, 31)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, "Lorem ipsum dolor sit amet", string(pt.Text()))
	})
}

func TestInsertAtEnds(t *testing.T) {
	pt := New([]byte("middle"))
	require.NoError(t, pt.Insert(0, []byte("start-")))
	assert.Equal(t, "start-middle", string(pt.Text()))

	require.NoError(t, pt.Insert(pt.DocLen(), []byte("-end")))
	assert.Equal(t, "start-middle-end", string(pt.Text()))
}

func TestInsertOutOfRange(t *testing.T) {
	pt := New([]byte("abc"))
	err := pt.Insert(10, []byte("x"))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "abc", string(pt.Text()))
}

func TestDeleteNoOpWhenEqual(t *testing.T) {
	pt := New([]byte("abc"))
	require.NoError(t, pt.Delete(1, 1))
	assert.Equal(t, "abc", string(pt.Text()))
}

func TestGetDocPos(t *testing.T) {
	pt := New([]byte("abc\nde\nf"))
	pos, ok := pt.GetDocPos(1, 0)
	require.True(t, ok)
	assert.Equal(t, 0, pos)

	pos, ok = pt.GetDocPos(2, 1)
	require.True(t, ok)
	assert.Equal(t, 5, pos)

	_, ok = pt.GetDocPos(2, 10)
	assert.False(t, ok)

	_, ok = pt.GetDocPos(10, 0)
	assert.False(t, ok)
}

func TestLineContentNeverContainsNewline(t *testing.T) {
	pt := New([]byte("a\nb\n\nc"))
	for i := 1; i <= pt.LineCount(); i++ {
		content, ok := pt.LineContent(i)
		require.True(t, ok)
		assert.NotContains(t, content, "\n")
	}
}

func TestLineCountMatchesNewlineCount(t *testing.T) {
	text := "one\ntwo\nthree\n\nfive"
	pt := New([]byte(text))
	assert.Equal(t, 1+strings.Count(text, "\n"), pt.LineCount())
}

func TestLineContentJoinRoundTrip(t *testing.T) {
	cases := []string{
		"one\ntwo\nthree",
		"one\ntwo\nthree\n",
		"",
		"\n",
		"no newlines here",
	}
	for _, s := range cases {
		pt := New([]byte(s))
		var joined bytes.Buffer
		for i := 1; i <= pt.LineCount(); i++ {
			content, ok := pt.LineContent(i)
			// An empty table reports one line but has no content for it.
			require.Equal(t, s != "", ok)
			if i > 1 {
				joined.WriteByte('\n')
			}
			joined.WriteString(content)
		}
		assert.Equal(t, s, joined.String())
	}
}

// naiveBuffer is a reference implementation of the same edit operations
// over a plain byte slice, used to differentially test the piece table.
type naiveBuffer struct {
	data []byte
}

func (n *naiveBuffer) insert(pos int, text []byte) bool {
	if pos > len(n.data) {
		return false
	}
	out := make([]byte, 0, len(n.data)+len(text))
	out = append(out, n.data[:pos]...)
	out = append(out, text...)
	out = append(out, n.data[pos:]...)
	n.data = out
	return true
}

func (n *naiveBuffer) delete(start, end int) bool {
	if start > end || end > len(n.data) {
		return false
	}
	out := make([]byte, 0, len(n.data)-(end-start))
	out = append(out, n.data[:start]...)
	out = append(out, n.data[end:]...)
	n.data = out
	return true
}

func TestDifferentialAgainstNaiveBuffer(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pt := New(nil)
	naive := &naiveBuffer{}

	alphabet := "abcde \n"
	randomText := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return b
	}

	for i := 0; i < 500; i++ {
		docLen := pt.DocLen()
		require.Equal(t, len(naive.data), docLen)
		require.Equal(t, string(naive.data), string(pt.Text()))

		if docLen == 0 || rng.Intn(2) == 0 {
			pos := rng.Intn(docLen + 1)
			text := randomText(1 + rng.Intn(5))
			require.NoError(t, pt.Insert(pos, text))
			require.True(t, naive.insert(pos, text))
		} else {
			a := rng.Intn(docLen + 1)
			b := a + rng.Intn(docLen+1-a)
			require.NoError(t, pt.Delete(a, b))
			require.True(t, naive.delete(a, b))
		}
	}

	assert.Equal(t, string(naive.data), string(pt.Text()))
	assert.Equal(t, len(naive.data), pt.DocLen())
	assert.Equal(t, 1+strings.Count(string(naive.data), "\n"), pt.LineCount())
}

func TestSpanNewlineOffsetsAreRelative(t *testing.T) {
	pt := New([]byte("ab\ncd\n"))
	require.Len(t, pt.spans, 1)
	assert.Equal(t, []int{2, 5}, pt.spans[0].Newlines())
}
