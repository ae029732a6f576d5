package snowflake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewNodeGenerator(t *testing.T) {
	testcases := []struct {
		name        string
		nodeId      int64
		wantErrFunc require.ErrorAssertionFunc
	}{
		{
			name:   "nodeId超出限制",
			nodeId: 1024,
			wantErrFunc: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, ErrExceedNode)
			},
		},
		{
			name:   "nodeId为负数",
			nodeId: -1,
			wantErrFunc: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, ErrExceedNode)
			},
		},
		{
			name:        "生成正常",
			nodeId:      0,
			wantErrFunc: require.NoError,
		},
	}
	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNodeGenerator(tt.nodeId)
			tt.wantErrFunc(t, err)
		})
	}
}

func Test_Generate(t *testing.T) {
	idmaker, err := NewNodeGenerator(1)
	require.NoError(t, err)
	ids := make([]int64, 0)
	for i := 0; i < 100000; i++ {
		ids = append(ids, idmaker.Generate().Int64())
	}
	// 校验生成的id是否重复
	idmap := make(map[int64]struct{}, len(ids))
	for i := 0; i < len(ids); i++ {
		_, ok := idmap[ids[i]]
		require.False(t, ok)
		idmap[ids[i]] = struct{}{}
	}
	require.Equal(t, int64(1), ID(ids[0]).Node())
}
