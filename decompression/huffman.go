package decompression

// Huffman decoding

const (
	// TreeSize is the number of nodes in a Galaxy huffman dictionary.
	TreeSize = 256
	// DictionarySize is the size of the on-disk dictionary in bytes.
	DictionarySize = TreeSize * 4
	// RootNode is where every code starts.
	RootNode = 254

	// Unbounded asks Decode to continue until the bits run out.
	Unbounded = -1
)

// Child is one side of a huffman node: either a literal byte (a leaf) or the
// index of the next node to visit.
type Child uint16

const leafBit Child = 0x100

func Leaf(value uint8) Child { return leafBit | Child(value) }

func Branch(node uint8) Child { return Child(node) }

// Leaf reports the literal held by c, if c is a leaf.
func (c Child) Leaf() (uint8, bool) {
	return uint8(c), c&leafBit != 0
}

// Node returns the index of the next node, if c is a branch.
func (c Child) Node() (uint8, bool) {
	return uint8(c), c&leafBit == 0
}

// Node is one entry of the dictionary: where a clear bit and a set bit lead.
type Node struct {
	Left  Child
	Right Child
}

// Tree is a parsed dictionary. Decoding always starts at RootNode.
type Tree [TreeSize]Node

// ParseTree reads a dictionary made of 4-byte records, one per node:
//
//   byte |
//    0   | left value
//    1   | left flag (0 = value is a leaf)
//    2   | right value
//    3   | right flag (0 = value is a leaf)
//
func ParseTree(dict []byte) (*Tree, error) {
	if len(dict) != DictionarySize {
		return nil, NewError(MalformedContainer, 0, len(dict),
			"huffman dictionary must be %d bytes", DictionarySize)
	}

	var tree Tree
	for i := range tree {
		rec := dict[i*4 : i*4+4]
		tree[i] = Node{
			Left:  child(rec[0], rec[1]),
			Right: child(rec[2], rec[3]),
		}
	}
	return &tree, nil
}

func child(value, flag uint8) Child {
	if flag == 0 {
		return Leaf(value)
	}
	return Branch(value)
}

// Decode expands data until length bytes have been produced. Any bits left
// after that are padding and are not looked at. If the bits run out first,
// whatever was decoded so far is returned.
func (t *Tree) Decode(data []byte, length int) []byte {
	if length == 0 {
		return []byte{}
	}

	capacity := length
	if capacity < 0 {
		capacity = len(data)
	}
	// Every code is at least one bit long.
	if most := len(data) * 8; capacity > most {
		capacity = most
	}
	out := make([]byte, 0, capacity)

	bits := NewBitStream(data)
	node := uint8(RootNode)
	for {
		bit, ok := bits.Next()
		if !ok {
			return out
		}

		next := t[node].Left
		if bit {
			next = t[node].Right
		}

		if value, isLeaf := next.Leaf(); isLeaf {
			out = append(out, value)
			if len(out) == length {
				return out
			}
			node = RootNode
			continue
		}
		node, _ = next.Node()
	}
}

// Huffman parses dict and decodes data with it in one step.
func Huffman(data, dict []byte, length int) ([]byte, error) {
	tree, err := ParseTree(dict)
	if err != nil {
		return nil, err
	}
	return tree.Decode(data, length), nil
}
