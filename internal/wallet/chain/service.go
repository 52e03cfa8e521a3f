package chain

import (
	"sort"

	"github.com/pkg/errors"
)

type service struct {
	chains         map[uint64]*Chain
	defaultChainID uint64
}

// NewService creates the registry. The default chain must be one of chains.
//
//nolint:ireturn
func NewService(chains []*Chain, defaultChainID uint64) (Service, error) {
	byID := make(map[uint64]*Chain, len(chains))
	for _, c := range chains {
		if c.ChainID == 0 {
			return nil, errors.Errorf("chain %q has no chain id", c.Name)
		}
		if _, dup := byID[c.ChainID]; dup {
			return nil, errors.Errorf("chain %d configured twice", c.ChainID)
		}
		byID[c.ChainID] = c
	}

	if _, ok := byID[defaultChainID]; !ok {
		return nil, errors.Wrapf(ErrChainNotFound, "default chain %d", defaultChainID)
	}

	return &service{chains: byID, defaultChainID: defaultChainID}, nil
}

func (s *service) GetChain(chainID uint64) (*Chain, error) {
	c, ok := s.chains[chainID]
	if !ok {
		return nil, errors.Wrapf(ErrChainNotFound, "chain %d", chainID)
	}
	return c, nil
}

func (s *service) ListChains() []*Chain {
	result := make([]*Chain, 0, len(s.chains))
	for _, c := range s.chains {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ChainID < result[j].ChainID })
	return result
}

func (s *service) GetActiveChains() []*Chain {
	all := s.ListChains()
	result := make([]*Chain, 0, len(all))
	for _, c := range all {
		if c.IsActive {
			result = append(result, c)
		}
	}
	return result
}

func (s *service) AllowedToken(chainID uint64) (*Token, error) {
	c, err := s.GetChain(chainID)
	if err != nil {
		return nil, err
	}
	if c.Token == nil {
		return nil, errors.Wrapf(ErrTokenNotConfigured, "chain %d", chainID)
	}
	return c.Token, nil
}

func (s *service) DefaultChainID() uint64 {
	return s.defaultChainID
}
