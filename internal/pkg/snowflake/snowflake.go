package snowflake

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

type Generator interface {
	Generate() ID
}

const maxNode int64 = 1023

var ErrExceedNode = errors.New("node超出限制")

// NodeGenerator 单节点雪花ID生成器,nodeId 区分部署实例
type NodeGenerator struct {
	node *snowflake.Node
}

func NewNodeGenerator(nodeId int64) (*NodeGenerator, error) {
	if nodeId < 0 || nodeId > maxNode {
		return nil, fmt.Errorf("%w: %d", ErrExceedNode, nodeId)
	}
	n, err := snowflake.NewNode(nodeId)
	if err != nil {
		return nil, err
	}
	return &NodeGenerator{node: n}, nil
}

func (g *NodeGenerator) Generate() ID {
	return ID(g.node.Generate())
}

type ID int64

func (f ID) Int64() int64 {
	return int64(f)
}

func (f ID) Node() int64 {
	return snowflake.ID(f).Node()
}
