package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	mu   sync.Mutex
)

// Init sets the snowflake node for this process. Calling it again replaces
// the node.
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return err
	}
	mu.Lock()
	node = n
	mu.Unlock()
	return nil
}

// GenerateID returns a new id, initialising node 1 on first use.
func GenerateID() int64 {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		n, err := snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
		node = n
	}
	return node.Generate().Int64()
}
